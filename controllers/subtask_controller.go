package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/AIABHISHEK/task-management-api/models"
	"github.com/AIABHISHEK/task-management-api/storage"
)

// SubtaskStore is the subtask persistence the controllers need.
// Implemented by storage.SubtaskRepo.
type SubtaskStore interface {
	Insert(ctx context.Context, subtask *models.Subtask) error
	FindLive(ctx context.Context, id primitive.ObjectID) (*models.Subtask, error)
	List(ctx context.Context, filter storage.SubtaskFilter, page, limit int64) ([]models.Subtask, int64, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.SubtaskStatus) (*models.Subtask, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	SoftDeleteByTask(ctx context.Context, taskID primitive.ObjectID) (int64, error)
}

// SubtaskController handles the subtask CRUD surface. Subtasks carry no
// owner of their own; every operation resolves ownership through the
// parent task.
type SubtaskController struct {
	subtasks SubtaskStore
	tasks    TaskStore
	logger   *zap.SugaredLogger
}

func NewSubtaskController(subtasks SubtaskStore, tasks TaskStore, logger *zap.SugaredLogger) *SubtaskController {
	return &SubtaskController{subtasks: subtasks, tasks: tasks, logger: logger}
}

// CreateSubtask creates a subtask under one of the caller's live tasks.
func (sc *SubtaskController) CreateSubtask(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	taskID, err := primitive.ObjectIDFromHex(req.TaskID)
	if err != nil {
		invalidParam(c, "task_id", "Task ID must be a valid ID")
		return
	}

	// The parent must exist, belong to the caller, and not be deleted.
	_, err = sc.tasks.FindLive(c.Request.Context(), taskID, caller)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	if err != nil {
		sc.logger.Errorw("parent task lookup failed", "error", err, "taskID", taskID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create subtask"})
		return
	}

	subtask := &models.Subtask{
		TaskID:    taskID,
		Title:     req.Title,
		Status:    models.SubtaskIncomplete,
		IsDeleted: false,
	}

	if err := sc.subtasks.Insert(c.Request.Context(), subtask); err != nil {
		sc.logger.Errorw("subtask insert failed", "error", err, "taskID", taskID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create subtask"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subtask created successfully", "subtask": subtask})
}

// GetSubtasks lists subtasks of the caller's tasks, optionally narrowed to
// one parent task and an exact status.
func (sc *SubtaskController) GetSubtasks(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var query models.SubtaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		validationFailed(c, err)
		return
	}

	var filter storage.SubtaskFilter
	if query.Status != nil {
		status := models.SubtaskStatus(*query.Status)
		filter.Status = &status
	}

	if query.TaskID != "" {
		taskID, err := primitive.ObjectIDFromHex(query.TaskID)
		if err != nil {
			invalidParam(c, "task_id", "Task ID must be a valid ID")
			return
		}
		owner, err := sc.tasks.OwnerOf(c.Request.Context(), taskID)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && owner != caller) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		if err != nil {
			sc.logger.Errorw("parent task lookup failed", "error", err, "taskID", taskID.Hex())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch subtasks"})
			return
		}
		filter.TaskIDs = []primitive.ObjectID{taskID}
	} else {
		ids, err := sc.tasks.OwnedIDs(c.Request.Context(), caller)
		if err != nil {
			sc.logger.Errorw("owned task lookup failed", "error", err, "caller", caller.Hex())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch subtasks"})
			return
		}
		filter.TaskIDs = ids
	}

	page, limit := query.Page, query.Limit
	if page == 0 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}

	subtasks, total, err := sc.subtasks.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		sc.logger.Errorw("subtask list failed", "error", err, "caller", caller.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch subtasks"})
		return
	}

	c.JSON(http.StatusOK, models.SubtaskListResponse{
		Total:    total,
		Page:     page,
		Limit:    limit,
		Subtasks: subtasks,
	})
}

// UpdateSubtask sets the status of a subtask belonging to one of the
// caller's tasks. Status 0 is a valid value, distinct from absent.
func (sc *SubtaskController) UpdateSubtask(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	id, _, ok := sc.ownedSubtask(c, caller)
	if !ok {
		return
	}

	var req models.UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	updated, err := sc.subtasks.SetStatus(c.Request.Context(), id, models.SubtaskStatus(*req.Status))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subtask not found"})
		return
	}
	if err != nil {
		sc.logger.Errorw("subtask update failed", "error", err, "subtaskID", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update subtask"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subtask status updated successfully", "subtask": updated})
}

// DeleteSubtask soft-deletes a subtask belonging to one of the caller's
// tasks. No cascade: subtasks have no children.
func (sc *SubtaskController) DeleteSubtask(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	id, _, ok := sc.ownedSubtask(c, caller)
	if !ok {
		return
	}

	err := sc.subtasks.SoftDelete(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subtask not found"})
		return
	}
	if err != nil {
		sc.logger.Errorw("subtask delete failed", "error", err, "subtaskID", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete subtask"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subtask deleted successfully"})
}

// ownedSubtask resolves the :id path param to a live subtask whose parent
// task belongs to the caller. A foreign subtask is reported as not found
// rather than forbidden. Responds and returns ok=false on any failure.
func (sc *SubtaskController) ownedSubtask(c *gin.Context, caller primitive.ObjectID) (primitive.ObjectID, *models.Subtask, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		invalidParam(c, "id", "Invalid subtask ID")
		return primitive.NilObjectID, nil, false
	}

	subtask, err := sc.subtasks.FindLive(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subtask not found"})
		return primitive.NilObjectID, nil, false
	}
	if err != nil {
		sc.logger.Errorw("subtask lookup failed", "error", err, "subtaskID", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch subtask"})
		return primitive.NilObjectID, nil, false
	}

	// Ownership comes from the parent task, deleted or not.
	owner, err := sc.tasks.OwnerOf(c.Request.Context(), subtask.TaskID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		sc.logger.Errorw("parent task lookup failed", "error", err, "taskID", subtask.TaskID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch subtask"})
		return primitive.NilObjectID, nil, false
	}
	if err != nil || owner != caller {
		c.JSON(http.StatusNotFound, gin.H{"message": "Subtask not found"})
		return primitive.NilObjectID, nil, false
	}

	return id, subtask, true
}
