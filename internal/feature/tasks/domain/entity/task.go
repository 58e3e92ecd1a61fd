// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Task represents a unit of tracked work owned by exactly one user.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `gorm:"primaryKey"`

	// UserID is the owning user. It never changes after creation and
	// scopes all visibility of the task.
	UserID uint `gorm:"not null;index"`

	// Title is the task's display title.
	Title string `gorm:"size:255;not null"`

	// Category groups tasks for reporting.
	Category string `gorm:"size:100;not null"`

	// Entries are the time-logging records of this task.
	// Deleting the task removes its entries.
	Entries []TaskEntry `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// TaskEntry is a single time-logging record belonging to exactly one task.
type TaskEntry struct {
	// ID is the unique identifier for the entry.
	ID uint `gorm:"primaryKey"`

	// TaskID references the parent task and never changes after creation.
	TaskID uint `gorm:"not null;index"`

	// TimeSpentMinutes is the logged duration in minutes.
	TimeSpentMinutes int `gorm:"not null"`

	// CreatedAt is the server-assigned creation timestamp. Entries of a
	// task are ordered by it, newest first.
	CreatedAt time.Time
}

// TableName returns the table name for the TaskEntry entity.
func (TaskEntry) TableName() string {
	return "task_entries"
}
