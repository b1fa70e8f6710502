// Package storage holds the MongoDB repositories. Each repository wraps one
// collection and translates driver errors into the package sentinels so
// callers never see mongo internals.
package storage

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AIABHISHEK/task-management-api/models"
)

// ErrNotFound is returned when no document matches a scoped lookup
// (wrong id, wrong owner, or already soft-deleted all look the same).
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate record")

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Priority  models.Priority
	Status    models.TaskStatus
	DueBefore *time.Time
}

// TaskUpdate carries the mutable task fields; nil fields are left untouched.
type TaskUpdate struct {
	DueDate  *time.Time
	Status   *models.TaskStatus
	Priority *models.Priority
}

// SubtaskFilter narrows a subtask listing. TaskIDs is the set of parent
// tasks the caller may see; an empty set matches nothing.
type SubtaskFilter struct {
	TaskIDs []primitive.ObjectID
	Status  *models.SubtaskStatus
}
