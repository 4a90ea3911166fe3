package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/thirdpole/pos/internal/auth/domain"
)

type LoginRequest struct {
	Pin string `json:"pin"`
}

type ChangePinRequest struct {
	CurrentPin string `json:"current_pin"`
	NewPin     string `json:"new_pin"`
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authSvc.Login(c.Request.Context(), strings.TrimSpace(req.Pin)); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ChangePin(c *gin.Context) {
	var req ChangePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.authSvc.ChangePin(c.Request.Context(), authdomain.ChangePinRequest{
		CurrentPin: strings.TrimSpace(req.CurrentPin),
		NewPin:     strings.TrimSpace(req.NewPin),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
