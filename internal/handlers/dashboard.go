package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type DashboardResponse struct {
	Project         types.ProjectResponse `json:"project"`
	TasksByStatus   map[string]int64      `json:"tasks_by_status"`
	TasksByPriority map[string]int64      `json:"tasks_by_priority"`
	OverdueCount    int64                 `json:"overdue_count"`
	MemberCount     int64                 `json:"member_count"`
	RecentTasks     []types.TaskResponse  `json:"recent_tasks"`
}

// GetDashboard aggregates per-project task statistics for members.
func GetDashboard(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, _, ok := requireMember(ctx, projectID); !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	byStatus := map[string]int64{
		types.StatusTodo:       0,
		types.StatusInProgress: 0,
		types.StatusReview:     0,
		types.StatusDone:       0,
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var statusCounts []statusCount

	if err := db.DB.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to aggregate task statuses")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, row := range statusCounts {
		byStatus[row.Status] = row.Count
	}

	byPriority := map[string]int64{
		types.PriorityLow:    0,
		types.PriorityMedium: 0,
		types.PriorityHigh:   0,
		types.PriorityUrgent: 0,
	}

	type priorityCount struct {
		Priority string
		Count    int64
	}

	var priorityCounts []priorityCount

	if err := db.DB.Model(&models.Task{}).
		Select("priority, COUNT(*) as count").
		Where("project_id = ?", projectID).
		Group("priority").
		Scan(&priorityCounts).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to aggregate task priorities")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	for _, row := range priorityCounts {
		byPriority[row.Priority] = row.Count
	}

	var overdue int64

	if err := db.DB.Model(&models.Task{}).
		Where("project_id = ? AND due_date IS NOT NULL AND due_date < ? AND status != ?",
			projectID, time.Now(), types.StatusDone).
		Count(&overdue).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to count overdue tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var memberCount int64

	if err := db.DB.Model(&models.Membership{}).
		Where("project_id = ?", projectID).
		Count(&memberCount).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to count members")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var recent []models.Task

	if err := db.DB.Preload("Assignee").Preload("Tags").
		Where("project_id = ?", projectID).
		Order("updated_at DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to fetch recent tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	recentTasks := make([]types.TaskResponse, 0, len(recent))

	for _, task := range recent {
		recentTasks = append(recentTasks, taskResponse(task))
	}

	ctx.JSON(http.StatusOK, DashboardResponse{
		Project:         projectResponse(project),
		TasksByStatus:   byStatus,
		TasksByPriority: byPriority,
		OverdueCount:    overdue,
		MemberCount:     memberCount,
		RecentTasks:     recentTasks,
	})
}
