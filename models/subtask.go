package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SubtaskStatus is the completion state of a subtask, kept numeric on the
// wire (0 incomplete, 1 done).
type SubtaskStatus int

const (
	SubtaskIncomplete SubtaskStatus = 0
	SubtaskDone       SubtaskStatus = 1
)

// Subtask belongs to a parent task and carries no owner of its own;
// visibility is inherited through task_id. Soft-deleted individually or by
// the parent task's cascade.
type Subtask struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"task_id"`
	Title     string             `bson:"title" json:"title"`
	Status    SubtaskStatus      `bson:"status" json:"status"`
	IsDeleted bool               `bson:"is_deleted" json:"is_deleted"`
}
