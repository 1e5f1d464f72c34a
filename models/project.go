package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of an internal project.
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusPlanning  ProjectStatus = "planning"
	StatusActive    ProjectStatus = "active"
	StatusOnHold    ProjectStatus = "on_hold"
	StatusCompleted ProjectStatus = "completed"
	StatusCancelled ProjectStatus = "cancelled"
	StatusArchived  ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPlanning, StatusActive, StatusOnHold,
		StatusCompleted, StatusCancelled, StatusArchived:
		return true
	}
	return false
}

// allowedTransitions is the flat transition table for project status.
// A project moves draft → planning → active, may pause, and ends in
// completed or cancelled before archival.
var allowedTransitions = map[ProjectStatus][]ProjectStatus{
	StatusDraft:     {StatusPlanning, StatusCancelled},
	StatusPlanning:  {StatusActive, StatusOnHold, StatusCancelled},
	StatusActive:    {StatusOnHold, StatusCompleted, StatusCancelled},
	StatusOnHold:    {StatusActive, StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusArchived},
	StatusCancelled: {StatusArchived},
	StatusArchived:  {},
}

// CanTransition reports whether a status change is allowed by the
// transition table. Staying put is always allowed.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	if s == to {
		return true
	}
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ProjectPriority is the urgency level of a project.
type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
	PriorityUrgent ProjectPriority = "urgent"
)

func (p ProjectPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Project is an internal job: budget, timeline, team and tasks. Deleting a
// project is a soft delete; the row stays for auditing.
type Project struct {
	Timestamped
	ProjectNumber string `json:"project_number" db:"project_number" gorm:"type:text;not null;uniqueIndex"`
	Name          string `json:"name" db:"name" gorm:"type:text;not null"`
	Description   string `json:"description,omitempty" db:"description" gorm:"type:text"`

	Status   ProjectStatus   `json:"status" db:"status" gorm:"type:text;not null;default:draft;index:idx_project_status_priority,priority:1"`
	Priority ProjectPriority `json:"priority" db:"priority" gorm:"type:text;not null;default:medium;index:idx_project_status_priority,priority:2"`

	Client        string     `json:"client" db:"client" gorm:"type:text;not null"`
	ContactPerson string     `json:"contact_person,omitempty" db:"contact_person" gorm:"type:text"`
	ManagerID     *uuid.UUID `json:"manager_id,omitempty" db:"manager_id" gorm:"type:uuid;index"`

	StartDate       *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty" db:"end_date"`
	ActualStartDate *time.Time `json:"actual_start_date,omitempty" db:"actual_start_date"`
	ActualEndDate   *time.Time `json:"actual_end_date,omitempty" db:"actual_end_date"`

	Budget   decimal.Decimal `json:"budget" db:"budget" gorm:"type:decimal(12,2);not null;default:0"`
	Currency string          `json:"currency" db:"currency" gorm:"type:text;not null;default:EUR"`

	InternalNotes string `json:"internal_notes,omitempty" db:"internal_notes" gorm:"type:text"`
	ClientNotes   string `json:"client_notes,omitempty" db:"client_notes" gorm:"type:text"`
	Requirements  string `json:"requirements,omitempty" db:"requirements" gorm:"type:text"`

	CategoryID *uuid.UUID `json:"category_id,omitempty" db:"category_id" gorm:"type:uuid;index"`

	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`

	Version   int            `json:"version" db:"version" gorm:"not null;default:1"`
	DeletedAt gorm.DeletedAt `json:"-" db:"deleted_at" gorm:"index"`

	Manager     *User            `json:"manager,omitempty" gorm:"foreignKey:ManagerID;references:ID"`
	TeamMembers []User           `json:"team_members,omitempty" gorm:"many2many:project_team_members"`
	Category    *ProjectCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Tags        []ProjectTag     `json:"tags,omitempty" gorm:"many2many:project_tag_assignments"`
	Tasks       []Task           `json:"tasks,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// projectNumberLetters is the alphabet for the collision-avoidance suffix.
const projectNumberLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ProjectNumberPrefix is the year prefix all numbers generated at t share.
func ProjectNumberPrefix(t time.Time) string {
	return fmt.Sprintf("PRJ%s", t.Format("06"))
}

// FormatProjectNumber builds a human-readable project number from the year
// prefix, a per-year sequence and a two-letter random suffix.
func FormatProjectNumber(t time.Time, sequence int) string {
	suffix := []byte{
		projectNumberLetters[rand.Intn(len(projectNumberLetters))],
		projectNumberLetters[rand.Intn(len(projectNumberLetters))],
	}
	return fmt.Sprintf("%s%04d%s", ProjectNumberPrefix(t), sequence, suffix)
}

// DurationDays is the planned duration, nil when the timeline is open.
func (p Project) DurationDays() *int {
	if p.StartDate == nil || p.EndDate == nil {
		return nil
	}
	days := int(p.EndDate.Sub(*p.StartDate).Hours() / 24)
	return &days
}

// ActualDurationDays is the realized duration, nil until both dates are set.
func (p Project) ActualDurationDays() *int {
	if p.ActualStartDate == nil || p.ActualEndDate == nil {
		return nil
	}
	days := int(p.ActualEndDate.Sub(*p.ActualStartDate).Hours() / 24)
	return &days
}

// ProgressPercentage is the share of completed tasks. Requires Tasks to be
// preloaded; an empty task list counts as zero progress.
func (p Project) ProgressPercentage() int {
	if len(p.Tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range p.Tasks {
		if t.Status == TaskCompleted {
			completed++
		}
	}
	return completed * 100 / len(p.Tasks)
}

// IsOverdue reports whether an active project has passed its end date.
func (p Project) IsOverdue(now time.Time) bool {
	return p.Status == StatusActive && p.EndDate != nil && now.After(*p.EndDate)
}
