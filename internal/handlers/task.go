package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/storage"
	"github.com/taskflow-dev/taskflow/internal/stores"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=100"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *uint      `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title         *string    `json:"title" binding:"omitempty,max=100"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status" binding:"omitempty,oneof=todo in_progress review done"`
	Priority      *string    `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID    *uint      `json:"assignee_id"`
	ClearAssignee bool       `json:"clear_assignee"`
	DueDate       *time.Time `json:"due_date"`
	ClearDueDate  bool       `json:"clear_due_date"`
}

func taskResponse(task models.Task) types.TaskResponse {
	tags := make([]string, 0, len(task.Tags))

	for _, tag := range task.Tags {
		tags = append(tags, tag.Name)
	}

	response := types.TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssigneeID:  task.AssigneeID,
		CreatorID:   task.CreatorID,
		DueDate:     task.DueDate,
		Overdue:     task.IsOverdue(),
		Tags:        tags,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Assignee != nil {
		response.Assignee = &types.UserResponse{
			ID:    task.Assignee.ID,
			Name:  task.Assignee.Name,
			Email: task.Assignee.Email,
		}
	}

	return response
}

// loadTask fetches a task and authorizes the caller as a member of its
// project. Returns ok=false with the response already written otherwise.
func loadTask(ctx *gin.Context) (task models.Task, userID uint, role string, ok bool) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return task, 0, "", false
	}

	if err := db.DB.Preload("Assignee").Preload("Tags").First(&task, taskID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return task, 0, "", false
	}

	userID, role, ok = requireMember(ctx, task.ProjectID)

	return task, userID, role, ok
}

func CreateTask(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _, ok := requireMember(ctx, projectID)

	if !ok {
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	priority := body.Priority

	if priority == "" {
		priority = types.PriorityMedium
	}

	assigneeID := body.AssigneeID

	// Unassigned tasks default to their creator. Assignees are not
	// required to be project members; the schema has never enforced it.
	if assigneeID == nil {
		assigneeID = &userID
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       body.Title,
		Description: body.Description,
		Status:      types.StatusTodo,
		Priority:    priority,
		AssigneeID:  assigneeID,
		CreatorID:   userID,
		DueDate:     body.DueDate,
	}

	if err := stores.CreateTask(db.DB, &task); err != nil {
		respondStoreError(ctx, err)
		return
	}

	services.NotifyTaskAssigned(db.DB, task, userID)

	ctx.JSON(http.StatusCreated, taskResponse(task))
}

func ListTasks(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, _, ok := requireMember(ctx, projectID); !ok {
		return
	}

	query := db.DB.Preload("Assignee").Preload("Tags").Where("project_id = ?", projectID)

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if assignee := ctx.Query("assignee_id"); assignee != "" {
		query = query.Where("assignee_id = ?", assignee)
	}

	var tasks []models.Task

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to list tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, taskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTask(ctx *gin.Context) {
	task, _, _, ok := loadTask(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	task, userID, role, ok := loadTask(ctx)

	if !ok {
		return
	}

	// Admins, managers, the creator and the assignee may edit.
	allowed := canManageTasks(role) || task.CreatorID == userID ||
		(task.AssigneeID != nil && *task.AssigneeID == userID)

	if !allowed {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to edit this task"})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	previousAssignee := task.AssigneeID
	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if body.Status != nil {
		// Statuses are free to move in any direction; there is no
		// transition graph.
		updates["status"] = *body.Status
	}

	if body.Priority != nil {
		updates["priority"] = *body.Priority
	}

	if body.ClearAssignee {
		updates["assignee_id"] = nil
	} else if body.AssigneeID != nil {
		updates["assignee_id"] = *body.AssigneeID
	}

	if body.ClearDueDate {
		updates["due_date"] = nil
	} else if body.DueDate != nil {
		updates["due_date"] = *body.DueDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to update task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if err := db.DB.Preload("Assignee").Preload("Tags").First(&task, task.ID).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to reload task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newlyAssigned := task.AssigneeID != nil &&
		(previousAssignee == nil || *previousAssignee != *task.AssigneeID)

	if newlyAssigned {
		services.NotifyTaskAssigned(db.DB, task, userID)
	}

	ctx.JSON(http.StatusOK, taskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	task, userID, role, ok := loadTask(ctx)

	if !ok {
		return
	}

	// Admins, managers and the creator may delete.
	if !canManageTasks(role) && task.CreatorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this task"})
		return
	}

	orphanedBlobs, err := stores.DeleteTask(db.DB, task.ID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	storage.Files.RemoveAll(orphanedBlobs)

	ctx.Status(http.StatusNoContent)
}
