package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/stores"
)

type TagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// AttachTag labels a task. Attaching an already attached tag is a no-op
// success, so clients can retry freely.
func AttachTag(ctx *gin.Context) {
	task, _, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	var body TagRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := stores.AttachTag(db.DB, task.ID, body.Name); err != nil {
		respondStoreError(ctx, err)
		return
	}

	tags, err := stores.TagsOf(db.DB, task.ID)

	if err != nil {
		logging.Logger.WithError(err).Error("failed to list tags")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tags": tags})
}

// DetachTag removes the label from the task. The tag record survives even
// when no task references it anymore.
func DetachTag(ctx *gin.Context) {
	task, _, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	name := ctx.Param("tag_name")

	if name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing tag name"})
		return
	}

	if err := stores.DetachTag(db.DB, task.ID, name); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
