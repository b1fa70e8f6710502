package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	StatusTodo TaskStatus = "TODO"
	StatusDone TaskStatus = "DONE"
)

// Task is a task document. Title, description and owner are fixed at
// creation; due_date, status and priority may change afterwards. Tasks are
// soft-deleted, never removed.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DueDate     time.Time          `bson:"due_date" json:"due_date"`
	Priority    Priority           `bson:"priority" json:"priority"`
	Status      TaskStatus         `bson:"status" json:"status"`
	OwnerID     primitive.ObjectID `bson:"user_id" json:"user_id"`
	IsDeleted   bool               `bson:"is_deleted" json:"is_deleted"`
}
