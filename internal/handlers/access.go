package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/stores"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

// requireMember resolves the caller's role in the project via the
// membership registry. Writes the error response and returns ok=false when
// the caller is not authenticated or not a member.
func requireMember(ctx *gin.Context, projectID uint) (userID uint, role string, ok bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, "", false
	}

	role, err = stores.RoleOf(db.DB, projectID, userID)

	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this project"})
		} else {
			logging.Logger.WithError(err).Error("failed to resolve project role")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return 0, "", false
	}

	return userID, role, true
}

// requireAdmin is requireMember plus an admin check.
func requireAdmin(ctx *gin.Context, projectID uint) (userID uint, ok bool) {
	userID, role, ok := requireMember(ctx, projectID)

	if !ok {
		return 0, false
	}

	if role != types.RoleAdmin {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only project admins can do this"})
		return 0, false
	}

	return userID, true
}

func canManageTasks(role string) bool {
	return role == types.RoleAdmin || role == types.RoleManager
}

// respondStoreError maps domain errors from the store layer onto HTTP
// statuses; anything unexpected is logged and reported as a 500.
func respondStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, stores.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, stores.ErrDuplicateMembership):
		ctx.JSON(http.StatusConflict, gin.H{"error": "User is already a member of this project"})
	case errors.Is(err, stores.ErrConstraint):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Required reference is missing"})
	default:
		logging.Logger.WithError(err).Error("unexpected store error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
