package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	backupdomain "github.com/thirdpole/pos/internal/backup/domain"
)

func (s *Server) ExportBackup(c *gin.Context) {
	snapshot, err := s.backupSvc.Export(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=pos-backup.json")
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) RestoreBackup(c *gin.Context) {
	var snapshot backupdomain.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.backupSvc.Restore(c.Request.Context(), snapshot); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "restored"})
}
