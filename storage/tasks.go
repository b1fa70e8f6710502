package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AIABHISHEK/task-management-api/models"
)

// TaskRepo persists tasks in the tasks collection. Every read and write is
// scoped to the owning user and, unless noted, to non-deleted documents.
type TaskRepo struct {
	col *mongo.Collection
}

func NewTaskRepo(db *mongo.Database) *TaskRepo {
	return &TaskRepo{col: db.Collection("tasks")}
}

// liveOwned is the standard task scope: the caller's non-deleted documents.
func liveOwned(id, owner primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user_id": owner, "is_deleted": false}
}

// Insert stores a new task and fills in its generated id.
func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	res, err := r.col.InsertOne(ctx, task)
	if err != nil {
		return err
	}
	task.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindLive returns the caller's non-deleted task with the given id, or
// ErrNotFound.
func (r *TaskRepo) FindLive(ctx context.Context, id, owner primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.col.FindOne(ctx, liveOwned(id, owner)).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns one page of the caller's non-deleted tasks, sorted by due
// date ascending, plus the total match count ignoring pagination.
func (r *TaskRepo) List(ctx context.Context, owner primitive.ObjectID, filter TaskFilter, page, limit int64) ([]models.Task, int64, error) {
	query := bson.M{"user_id": owner, "is_deleted": false}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.DueBefore != nil {
		query["due_date"] = bson.M{"$lte": *filter.DueBefore}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Update applies the non-nil fields of upd to the caller's non-deleted task
// and returns the updated document, or ErrNotFound.
func (r *TaskRepo) Update(ctx context.Context, id, owner primitive.ObjectID, upd TaskUpdate) (*models.Task, error) {
	set := bson.M{}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err := r.col.FindOneAndUpdate(ctx, liveOwned(id, owner), bson.M{"$set": set}, opts).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// SoftDelete flips is_deleted on the caller's non-deleted task. A task that
// is already deleted no longer matches and yields ErrNotFound.
func (r *TaskRepo) SoftDelete(ctx context.Context, id, owner primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx, liveOwned(id, owner), bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnedIDs returns the ids of all the caller's non-deleted tasks.
func (r *TaskRepo) OwnedIDs(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": owner, "is_deleted": false}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// OwnerOf returns the owner of the task with the given id regardless of its
// deletion state. Subtask operations use it to derive ownership through the
// parent even after a cascade has begun.
func (r *TaskRepo) OwnerOf(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	var doc struct {
		OwnerID primitive.ObjectID `bson:"user_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"user_id": 1})
	err := r.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return doc.OwnerID, nil
}
