package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type putBackupRequest struct {
	Data      json.RawMessage `json:"data" binding:"required"`
	Timestamp time.Time       `json:"timestamp" binding:"required"`
	ItemCount int             `json:"item_count"`
}

func (a *API) putBackup(c *gin.Context) {
	var req putBackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "data and timestamp are required")
		return
	}

	updatedAt, err := a.backups.Upsert(c.Request.Context(), currentUserID(c), req.Data, req.Timestamp, req.ItemCount)
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated_at": updatedAt})
}

func (a *API) getBackup(c *gin.Context) {
	rec, err := a.backups.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       rec.Data,
		"timestamp":  rec.SnapshotTimestamp,
		"item_count": rec.ItemCount,
		"updated_at": rec.UpdatedAt,
	})
}

func (a *API) export(c *gin.Context) {
	rec, err := a.backups.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	url, err := a.exports.Upload(c.Request.Context(), currentUserID(c), rec.Data)
	if err != nil {
		a.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
