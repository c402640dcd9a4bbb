package services

import (
	"fmt"

	"github.com/taskflow-dev/taskflow/internal/logging"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/stores"
	"gorm.io/gorm"
)

// Notification writers invoked from the request handlers. Failures are
// logged and swallowed: a lost notification must never fail the operation
// that triggered it.

func NotifyTaskAssigned(db *gorm.DB, task models.Task, actorID uint) {
	if task.AssigneeID == nil || *task.AssigneeID == actorID {
		return
	}

	content := fmt.Sprintf("You have been assigned the task %q", task.Title)
	link := fmt.Sprintf("/projects/%d/tasks/%d", task.ProjectID, task.ID)

	if _, err := stores.CreateNotification(db, *task.AssigneeID, content, link); err != nil {
		logging.Logger.WithError(err).Warn("failed to record assignment notification")
	}
}

func NotifyCommentAdded(db *gorm.DB, task models.Task, authorID uint, authorName string) {
	recipients := map[uint]bool{task.CreatorID: true}

	if task.AssigneeID != nil {
		recipients[*task.AssigneeID] = true
	}

	delete(recipients, authorID)

	content := fmt.Sprintf("%s commented on the task %q", authorName, task.Title)
	link := fmt.Sprintf("/projects/%d/tasks/%d", task.ProjectID, task.ID)

	for userID := range recipients {
		if _, err := stores.CreateNotification(db, userID, content, link); err != nil {
			logging.Logger.WithError(err).Warn("failed to record comment notification")
		}
	}
}

func NotifyMemberAdded(db *gorm.DB, project models.Project, userID uint, role string) {
	content := fmt.Sprintf("You have been added to the project %q as %s", project.Title, role)
	link := fmt.Sprintf("/projects/%d", project.ID)

	if _, err := stores.CreateNotification(db, userID, content, link); err != nil {
		logging.Logger.WithError(err).Warn("failed to record membership notification")
	}
}
