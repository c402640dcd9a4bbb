package types

import "time"

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	UserID                  uint           `json:"user_id"`
	Bio                     string         `json:"bio"`
	JobTitle                string         `json:"job_title"`
	AvatarPath              string         `json:"avatar_path,omitempty"`
	NotificationPreferences map[string]any `json:"notification_preferences"`
}

type MemberResponse struct {
	User     UserResponse `json:"user"`
	Role     string       `json:"role"`
	JoinedAt time.Time    `json:"joined_at"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskResponse struct {
	ID          uint          `json:"id"`
	ProjectID   uint          `json:"project_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	AssigneeID  *uint         `json:"assignee_id"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
	CreatorID   uint          `json:"creator_id"`
	DueDate     *time.Time    `json:"due_date"`
	Overdue     bool          `json:"overdue"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CommentResponse struct {
	ID        uint         `json:"id"`
	TaskID    uint         `json:"task_id"`
	Author    UserResponse `json:"author"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type AttachmentResponse struct {
	ID         uint      `json:"id"`
	TaskID     uint      `json:"task_id"`
	FileName   string    `json:"file_name"`
	FileType   string    `json:"file_type"`
	FileSize   int64     `json:"file_size"`
	UploaderID uint      `json:"uploader_id"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
