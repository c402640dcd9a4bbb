package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/storage"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type UpdateProfileRequest struct {
	Bio                     *string        `json:"bio"`
	JobTitle                *string        `json:"job_title" binding:"omitempty,max=100"`
	NotificationPreferences map[string]any `json:"notification_preferences"`
}

const maxAvatarSize = 5 << 20 // 5 MiB

func profileResponse(profile models.Profile) types.ProfileResponse {
	preferences := map[string]any{}

	if len(profile.NotificationPreferences) > 0 {
		_ = json.Unmarshal(profile.NotificationPreferences, &preferences)
	}

	return types.ProfileResponse{
		UserID:                  profile.UserID,
		Bio:                     profile.Bio,
		JobTitle:                profile.JobTitle,
		AvatarPath:              profile.AvatarPath,
		NotificationPreferences: preferences,
	}
}

func GetMyProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

func GetProfile(ctx *gin.Context) {
	targetID, err := utils.ParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile

	if err := db.DB.Where("user_id = ?", targetID).First(&profile).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

func UpdateProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Bio != nil {
		profile.Bio = *body.Bio
	}

	if body.JobTitle != nil {
		profile.JobTitle = strings.TrimSpace(*body.JobTitle)
	}

	if body.NotificationPreferences != nil {
		raw, err := json.Marshal(body.NotificationPreferences)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification preferences"})
			return
		}

		profile.NotificationPreferences = raw
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		logging.Logger.WithError(err).Error("failed to update profile")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

func UploadAvatar(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var profile models.Profile

	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	file, err := ctx.FormFile("avatar")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "An avatar file is required"})
		return
	}

	if file.Size > maxAvatarSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Avatar exceeds the 5 MiB limit"})
		return
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be an image"})
		return
	}

	storedPath, err := storage.Files.Save(file, "profiles")

	if err != nil {
		logging.Logger.WithError(err).Error("failed to store avatar")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store avatar"})
		return
	}

	previous := profile.AvatarPath
	profile.AvatarPath = storedPath

	if err := db.DB.Save(&profile).Error; err != nil {
		_ = storage.Files.Remove(storedPath)
		logging.Logger.WithError(err).Error("failed to update avatar path")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	if previous != "" {
		_ = storage.Files.Remove(previous)
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}
