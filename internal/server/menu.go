package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	"github.com/thirdpole/pos/pkg/money"
)

type UpsertMenuItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	InStock     *bool   `json:"in_stock"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

func (r UpsertMenuItemRequest) toDomain() menudomain.UpsertItemRequest {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	return menudomain.UpsertItemRequest{
		Name:        strings.TrimSpace(r.Name),
		PriceAmount: money.FromMajor(r.Price),
		Category:    strings.TrimSpace(r.Category),
		Image:       strings.TrimSpace(r.Image),
		Description: strings.TrimSpace(r.Description),
		InStock:     inStock,
	}
}

func (s *Server) ListMenuItems(c *gin.Context) {
	items, err := s.menuSvc.ListItems(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) CreateMenuItem(c *gin.Context) {
	var req UpsertMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.menuSvc.CreateItem(c.Request.Context(), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) UpdateMenuItem(c *gin.Context) {
	var req UpsertMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.menuSvc.UpdateItem(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (s *Server) DeleteMenuItem(c *gin.Context) {
	if err := s.menuSvc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListCategories(c *gin.Context) {
	categories, err := s.menuSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	category, err := s.menuSvc.CreateCategory(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (s *Server) RenameCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	category, err := s.menuSvc.RenameCategory(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (s *Server) DeleteCategory(c *gin.Context) {
	if err := s.menuSvc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
