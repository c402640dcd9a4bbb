package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/stores"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
	"gorm.io/gorm"
)

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin manager member"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager member"`
}

func ListMembers(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, _, ok := requireMember(ctx, projectID); !ok {
		return
	}

	memberships, err := stores.ListMembers(db.DB, projectID)

	if err != nil {
		logging.Logger.WithError(err).Error("failed to list members")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]types.MemberResponse, 0, len(memberships))

	for _, membership := range memberships {
		response = append(response, types.MemberResponse{
			User: types.UserResponse{
				ID:    membership.User.ID,
				Name:  membership.User.Name,
				Email: membership.User.Email,
			},
			Role:     membership.Role,
			JoinedAt: membership.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func AddMember(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireAdmin(ctx, projectID); !ok {
		return
	}

	var body AddMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No user with that email"})
		} else {
			logging.Logger.WithError(err).Error("failed to look up user")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	membership, err := stores.AddMember(db.DB, projectID, user.ID, body.Role)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err == nil {
		services.NotifyMemberAdded(db.DB, project, user.ID, body.Role)
	}

	ctx.JSON(http.StatusCreated, types.MemberResponse{
		User: types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		Role:     membership.Role,
		JoinedAt: membership.CreatedAt,
	})
}

func UpdateMemberRole(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := utils.ParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := requireAdmin(ctx, projectID); !ok {
		return
	}

	var body UpdateMemberRoleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentRole, err := stores.RoleOf(db.DB, projectID, memberID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	// The registry allows any transition; the guard against losing the
	// last admin lives here with the caller.
	if currentRole == types.RoleAdmin && body.Role != types.RoleAdmin {
		admins, err := stores.CountAdmins(db.DB, projectID)

		if err != nil {
			logging.Logger.WithError(err).Error("failed to count admins")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if admins <= 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change the role of the last admin"})
			return
		}
	}

	if err := stores.UpdateRole(db.DB, projectID, memberID, body.Role); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

func RemoveMember(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberID, err := utils.ParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	callerID, ok := requireAdmin(ctx, projectID)

	if !ok {
		return
	}

	if memberID == callerID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "You cannot remove yourself from the project"})
		return
	}

	currentRole, err := stores.RoleOf(db.DB, projectID, memberID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	if currentRole == types.RoleAdmin {
		admins, err := stores.CountAdmins(db.DB, projectID)

		if err != nil {
			logging.Logger.WithError(err).Error("failed to count admins")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if admins <= 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot remove the last admin from the project"})
			return
		}
	}

	// The registry only drops the membership row. Unassigning the leaver's
	// tasks is the task store's rule, composed here; tasks they created
	// stay untouched.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := stores.RemoveMember(tx, projectID, memberID); err != nil {
			return err
		}
		return stores.ClearProjectAssignments(tx, projectID, memberID)
	})

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
