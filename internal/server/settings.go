package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
)

type UpdateSettingsRequest struct {
	RestaurantName       string  `json:"restaurant_name"`
	Address              string  `json:"address"`
	TaxRatePercent       float64 `json:"tax_rate_percent"`
	ServiceChargePercent float64 `json:"service_charge_percent"`
}

func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.settingsSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (s *Server) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.settingsSvc.Update(c.Request.Context(), settingsdomain.Settings{
		RestaurantName:       strings.TrimSpace(req.RestaurantName),
		Address:              strings.TrimSpace(req.Address),
		TaxRatePercent:       req.TaxRatePercent,
		ServiceChargePercent: req.ServiceChargePercent,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
