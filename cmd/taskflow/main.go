package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/router"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

func main() {
	envErr := godotenv.Load()

	logging.InitLogger()

	if envErr != nil {
		logging.Logger.WithError(envErr).Warn("No .env file loaded")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logging.Logger.WithError(err).Fatal("Failed to initialize JWT secret")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		logging.Logger.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		logging.Logger.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		logging.Logger.WithError(err).Fatal("Failed to migrate database")
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")

	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	if err := storage.InitStore(uploadsDir); err != nil {
		logging.Logger.WithError(err).Fatal("Failed to initialize file storage")
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		logging.Logger.Info("PORT not set, defaulting to 3000")
	}

	logging.Logger.WithField("port", port).Info("Starting server")

	if err := r.Run(":" + port); err != nil {
		logging.Logger.WithError(err).Fatal("Failed to start server")
	}
}
