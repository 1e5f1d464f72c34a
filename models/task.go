package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the state of a single project task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task is a unit of work inside a project; task completion drives the
// project progress percentage.
type Task struct {
	Timestamped
	ProjectID uuid.UUID  `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index"`
	Name      string     `json:"name" db:"name" gorm:"type:text;not null"`
	Status    TaskStatus `json:"status" db:"status" gorm:"type:text;not null;default:pending"`
	DueDate   *time.Time `json:"due_date,omitempty" db:"due_date"`
}
