package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func commentResponse(comment models.Comment) types.CommentResponse {
	return types.CommentResponse{
		ID:     comment.ID,
		TaskID: comment.TaskID,
		Author: types.UserResponse{
			ID:    comment.Author.ID,
			Name:  comment.Author.Name,
			Email: comment.Author.Email,
		},
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func CreateComment(ctx *gin.Context) {
	task, userID, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	var body CommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := models.Comment{
		TaskID:   task.ID,
		AuthorID: userID,
		Content:  body.Content,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to create comment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	currentUser, _ := utils.GetCurrentUser(ctx)
	services.NotifyCommentAdded(db.DB, task, userID, currentUser.Name)

	if err := db.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to reload comment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, commentResponse(comment))
}

func ListComments(ctx *gin.Context) {
	task, _, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	var comments []models.Comment

	if err := db.DB.Preload("Author").
		Where("task_id = ?", task.ID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to list comments")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))

	for _, comment := range comments {
		response = append(response, commentResponse(comment))
	}

	ctx.JSON(http.StatusOK, response)
}

func UpdateComment(ctx *gin.Context) {
	task, userID, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	commentID, err := utils.ParamID(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.Where("id = ? AND task_id = ?", commentID, task.ID).First(&comment).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.AuthorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the author can edit a comment"})
		return
	}

	var body CommentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment.Content = body.Content

	if err := db.DB.Save(&comment).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to update comment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	if err := db.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to reload comment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, commentResponse(comment))
}

func DeleteComment(ctx *gin.Context) {
	task, userID, role, ok := loadTask(ctx)

	if !ok {
		return
	}

	commentID, err := utils.ParamID(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment

	if err := db.DB.Where("id = ? AND task_id = ?", commentID, task.ID).First(&comment).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	// The author or a project admin/manager may delete.
	if comment.AuthorID != userID && !canManageTasks(role) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this comment"})
		return
	}

	if err := db.DB.Unscoped().Delete(&comment).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to delete comment")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
