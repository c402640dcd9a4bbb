package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/middleware"
	"github.com/taskflow-dev/taskflow/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateAccount)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteAccount)
		}

		profiles := api.Group("/profiles", middleware.AuthMiddleware())
		{
			profiles.GET("/me", handlers.GetMyProfile)
			profiles.PATCH("/me", handlers.UpdateProfile)
			profiles.POST("/me/avatar", handlers.UploadAvatar)
			profiles.GET("/:user_id", handlers.GetProfile)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.GET("/unread-count", handlers.UnreadNotificationCount)
			notifications.POST("/:notification_id/read", handlers.MarkNotificationRead)
			notifications.POST("/read-all", handlers.MarkAllNotificationsRead)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Dashboard endpoint
			projects.GET("/:project_id/dashboard", handlers.GetDashboard)

			// Member endpoints
			projects.GET("/:project_id/members", handlers.ListMembers)
			projects.POST("/:project_id/members", handlers.AddMember)
			projects.PATCH("/:project_id/members/:user_id", handlers.UpdateMemberRole)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveMember)

			// Task endpoints
			projects.POST("/:project_id/tasks", handlers.CreateTask)
			projects.GET("/:project_id/tasks", handlers.ListTasks)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.GET("/:task_id", handlers.GetTask)
			tasks.PATCH("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)

			tasks.POST("/:task_id/tags", handlers.AttachTag)
			tasks.DELETE("/:task_id/tags/:tag_name", handlers.DetachTag)

			tasks.POST("/:task_id/comments", handlers.CreateComment)
			tasks.GET("/:task_id/comments", handlers.ListComments)
			tasks.PATCH("/:task_id/comments/:comment_id", handlers.UpdateComment)
			tasks.DELETE("/:task_id/comments/:comment_id", handlers.DeleteComment)

			tasks.POST("/:task_id/attachments", handlers.UploadAttachment)
			tasks.GET("/:task_id/attachments", handlers.ListAttachments)
			tasks.GET("/:task_id/attachments/:attachment_id/download", handlers.DownloadAttachment)
			tasks.DELETE("/:task_id/attachments/:attachment_id", handlers.DeleteAttachment)
		}
	}

	return r
}
