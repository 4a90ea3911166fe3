package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
)

type CreateTableRequest struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

func (s *Server) ListTables(c *gin.Context) {
	tables, err := s.tableSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

func (s *Server) CreateTable(c *gin.Context) {
	var req CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	table, err := s.tableSvc.Create(c.Request.Context(), tabledomain.CreateTableRequest{
		Name:  strings.TrimSpace(req.Name),
		Seats: req.Seats,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, table)
}

func (s *Server) DeleteTable(c *gin.Context) {
	if err := s.tableSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
