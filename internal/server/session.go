package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/thirdpole/pos/internal/session/domain"
)

type AddItemRequest struct {
	ItemID string `json:"item_id"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) ViewSession(c *gin.Context) {
	view, err := s.sessionSvc.View(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) SelectTable(c *gin.Context) {
	view, err := s.sessionSvc.SelectTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) AddSessionItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.sessionSvc.AddItem(c.Request.Context(), req.ItemID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) SetSessionItemQuantity(c *gin.Context) {
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	view, err := s.sessionSvc.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) RemoveSessionItem(c *gin.Context) {
	view, err := s.sessionSvc.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) ClearSessionTable(c *gin.Context) {
	if err := s.sessionSvc.ClearTable(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Checkout finalizes the session. When the order was recorded but the
// session could not be cleared afterwards, the order is still returned
// together with a warning so the operator can reset the table manually.
func (s *Server) Checkout(c *gin.Context) {
	order, err := s.sessionSvc.Finalize(c.Request.Context())
	if err != nil {
		if errors.Is(err, sessiondomain.ErrSessionNotCleared) && order != nil {
			c.JSON(http.StatusOK, gin.H{
				"order":   order,
				"warning": sessiondomain.ErrSessionNotCleared.Error(),
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
