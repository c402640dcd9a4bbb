package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/storage"
	"github.com/taskflow-dev/taskflow/internal/stores"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=active archived"`
}

type ProjectListItem struct {
	types.ProjectResponse
	Role        string `json:"role"`
	MemberCount int64  `json:"member_count"`
	TaskCount   int64  `json:"task_count"`
}

type ProjectDetailResponse struct {
	types.ProjectResponse
	Role    string                 `json:"role"`
	Members []types.MemberResponse `json:"members"`
	Tasks   []types.TaskResponse   `json:"tasks"`
}

func projectResponse(project models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
	}
}

func CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project := models.Project{
		Title:       body.Title,
		Description: body.Description,
		Status:      types.ProjectActive,
	}

	// The creator becomes the project's first admin.
	if err := stores.CreateProject(db.DB, &project, userID); err != nil {
		logging.Logger.WithError(err).Error("failed to create project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var memberships []models.Membership

	if err := db.DB.Preload("Project").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to list projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectListItem, 0, len(memberships))

	for _, membership := range memberships {
		var memberCount, taskCount int64

		db.DB.Model(&models.Membership{}).Where("project_id = ?", membership.ProjectID).Count(&memberCount)
		db.DB.Model(&models.Task{}).Where("project_id = ?", membership.ProjectID).Count(&taskCount)

		response = append(response, ProjectListItem{
			ProjectResponse: projectResponse(membership.Project),
			Role:            membership.Role,
			MemberCount:     memberCount,
			TaskCount:       taskCount,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, role, ok := requireMember(ctx, projectID)

	if !ok {
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	memberships, err := stores.ListMembers(db.DB, projectID)

	if err != nil {
		logging.Logger.WithError(err).Error("failed to list members")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	members := make([]types.MemberResponse, 0, len(memberships))

	for _, membership := range memberships {
		members = append(members, types.MemberResponse{
			User: types.UserResponse{
				ID:    membership.User.ID,
				Name:  membership.User.Name,
				Email: membership.User.Email,
			},
			Role:     membership.Role,
			JoinedAt: membership.CreatedAt,
		})
	}

	var tasks []models.Task

	if err := db.DB.Preload("Assignee").Preload("Tags").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to list tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	taskResponses := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		taskResponses = append(taskResponses, taskResponse(task))
	}

	ctx.JSON(http.StatusOK, ProjectDetailResponse{
		ProjectResponse: projectResponse(project),
		Role:            role,
		Members:         members,
		Tasks:           taskResponses,
	})
}

func UpdateProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireAdmin(ctx, projectID); !ok {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	project.Title = body.Title
	project.Description = body.Description

	if body.Status != "" {
		project.Status = body.Status
	}

	if err := db.DB.Save(&project).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to update project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireAdmin(ctx, projectID); !ok {
		return
	}

	// Removes the project's tasks, their comments and attachments, and all
	// memberships. Shared tags stay.
	orphanedBlobs, err := stores.DeleteProject(db.DB, projectID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	storage.Files.RemoveAll(orphanedBlobs)

	ctx.Status(http.StatusNoContent)
}
