package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID parses a positive integer path parameter.
func ParamID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New("Missing " + name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("Invalid " + name)
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return ParamID(ctx, "project_id")
}

func GetTaskID(ctx *gin.Context) (uint, error) {
	return ParamID(ctx, "task_id")
}
