package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/storage"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

// Uploads beyond this size are rejected outright.
const maxAttachmentSize = 10 << 20 // 10 MiB

func attachmentResponse(attachment models.Attachment) types.AttachmentResponse {
	return types.AttachmentResponse{
		ID:         attachment.ID,
		TaskID:     attachment.TaskID,
		FileName:   attachment.FileName,
		FileType:   attachment.FileType,
		FileSize:   attachment.FileSize,
		UploaderID: attachment.UploaderID,
		UploadedAt: attachment.CreatedAt,
	}
}

func UploadAttachment(ctx *gin.Context) {
	task, userID, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	file, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	if file.Size > maxAttachmentSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10 MiB limit"})
		return
	}

	fileType := file.Header.Get("Content-Type")

	if fileType == "" {
		fileType = "application/octet-stream"
	}

	storedPath, err := storage.Files.Save(file, "attachments")

	if err != nil {
		logging.Logger.WithError(err).Error("failed to store attachment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	attachment := models.Attachment{
		TaskID:     task.ID,
		StoredPath: storedPath,
		FileName:   file.Filename,
		FileType:   fileType,
		FileSize:   file.Size,
		UploaderID: userID,
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		// The row failed, so the blob has no owner.
		_ = storage.Files.Remove(storedPath)
		logging.Logger.WithError(err).Error("failed to create attachment record")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save attachment"})
		return
	}

	ctx.JSON(http.StatusCreated, attachmentResponse(attachment))
}

func ListAttachments(ctx *gin.Context) {
	task, _, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	var attachments []models.Attachment

	if err := db.DB.Where("task_id = ?", task.ID).
		Order("created_at DESC, id DESC").
		Find(&attachments).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to list attachments")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
		return
	}

	response := make([]types.AttachmentResponse, 0, len(attachments))

	for _, attachment := range attachments {
		response = append(response, attachmentResponse(attachment))
	}

	ctx.JSON(http.StatusOK, response)
}

func DownloadAttachment(ctx *gin.Context) {
	task, _, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	attachmentID, err := utils.ParamID(ctx, "attachment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var attachment models.Attachment

	if err := db.DB.Where("id = ? AND task_id = ?", attachmentID, task.ID).First(&attachment).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	ctx.FileAttachment(storage.Files.Path(attachment.StoredPath), attachment.FileName)
}

func DeleteAttachment(ctx *gin.Context) {
	task, userID, role, ok := loadTask(ctx)

	if !ok {
		return
	}

	attachmentID, err := utils.ParamID(ctx, "attachment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var attachment models.Attachment

	if err := db.DB.Where("id = ? AND task_id = ?", attachmentID, task.ID).First(&attachment).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	// The uploader or a project admin/manager may delete.
	if attachment.UploaderID != userID && !canManageTasks(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this attachment"})
		return
	}

	if err := db.DB.Unscoped().Delete(&attachment).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to delete attachment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete attachment"})
		return
	}

	_ = storage.Files.Remove(attachment.StoredPath)

	ctx.Status(http.StatusNoContent)
}
