package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AIABHISHEK/task-management-api/models"
)

// SubtaskRepo persists subtasks in the subtasks collection.
type SubtaskRepo struct {
	col *mongo.Collection
}

func NewSubtaskRepo(db *mongo.Database) *SubtaskRepo {
	return &SubtaskRepo{col: db.Collection("subtasks")}
}

// Insert stores a new subtask and fills in its generated id.
func (r *SubtaskRepo) Insert(ctx context.Context, subtask *models.Subtask) error {
	res, err := r.col.InsertOne(ctx, subtask)
	if err != nil {
		return err
	}
	subtask.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindLive returns the non-deleted subtask with the given id, or
// ErrNotFound.
func (r *SubtaskRepo) FindLive(ctx context.Context, id primitive.ObjectID) (*models.Subtask, error) {
	var subtask models.Subtask
	err := r.col.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&subtask)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

// List returns one page of non-deleted subtasks whose parent is in
// filter.TaskIDs, in storage order, plus the total match count.
func (r *SubtaskRepo) List(ctx context.Context, filter SubtaskFilter, page, limit int64) ([]models.Subtask, int64, error) {
	taskIDs := filter.TaskIDs
	if taskIDs == nil {
		// A nil slice would marshal to null; $in needs an array.
		taskIDs = []primitive.ObjectID{}
	}
	query := bson.M{
		"is_deleted": false,
		"task_id":    bson.M{"$in": taskIDs},
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	subtasks := []models.Subtask{}
	if err := cursor.All(ctx, &subtasks); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return subtasks, total, nil
}

// SetStatus updates the status of the non-deleted subtask with the given id
// and returns the updated document, or ErrNotFound.
func (r *SubtaskRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.SubtaskStatus) (*models.Subtask, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var subtask models.Subtask
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&subtask)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subtask, nil
}

// SoftDelete flips is_deleted on the subtask with the given id, or returns
// ErrNotFound if it does not exist or is already deleted.
func (r *SubtaskRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteByTask marks every subtask of the given task deleted,
// regardless of current state. This is the cascade half of a task delete;
// it runs as a separate write after the task flip and is not retried.
func (r *SubtaskRepo) SoftDeleteByTask(ctx context.Context, taskID primitive.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"task_id": taskID},
		bson.M{"$set": bson.M{"is_deleted": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
