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
	"github.com/AIABHISHEK/task-management-api/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// TaskStore is the task persistence the controllers need. Implemented by
// storage.TaskRepo.
type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	FindLive(ctx context.Context, id, owner primitive.ObjectID) (*models.Task, error)
	List(ctx context.Context, owner primitive.ObjectID, filter storage.TaskFilter, page, limit int64) ([]models.Task, int64, error)
	Update(ctx context.Context, id, owner primitive.ObjectID, upd storage.TaskUpdate) (*models.Task, error)
	SoftDelete(ctx context.Context, id, owner primitive.ObjectID) error
	OwnedIDs(ctx context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error)
	OwnerOf(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
}

// TaskController handles the task CRUD surface. Every route runs behind the
// auth middleware and is scoped to the caller.
type TaskController struct {
	tasks    TaskStore
	subtasks SubtaskStore
	logger   *zap.SugaredLogger
}

func NewTaskController(tasks TaskStore, subtasks SubtaskStore, logger *zap.SugaredLogger) *TaskController {
	return &TaskController{tasks: tasks, subtasks: subtasks, logger: logger}
}

// CreateTask creates a task owned by the caller. Priority defaults to
// Medium and status to TODO.
func (tc *TaskController) CreateTask(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		invalidParam(c, "due_date", "Due date must be a valid ISO8601 date")
		return
	}

	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      models.StatusTodo,
		OwnerID:     owner,
		IsDeleted:   false,
	}

	if err := tc.tasks.Insert(c.Request.Context(), task); err != nil {
		tc.logger.Errorw("task insert failed", "error", err, "owner", owner.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})
}

// GetTasks lists the caller's tasks with optional filters, sorted by due
// date ascending.
func (tc *TaskController) GetTasks(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}

	var query models.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		validationFailed(c, err)
		return
	}

	filter := storage.TaskFilter{
		Priority: models.Priority(query.Priority),
		Status:   models.TaskStatus(query.Status),
	}
	if query.DueDate != "" {
		dueBefore, err := utils.ParseDate(query.DueDate)
		if err != nil {
			invalidParam(c, "due_date", "Due date must be a valid ISO8601 date")
			return
		}
		filter.DueBefore = &dueBefore
	}

	page, limit := query.Page, query.Limit
	if page == 0 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}

	tasks, total, err := tc.tasks.List(c.Request.Context(), owner, filter, page, limit)
	if err != nil {
		tc.logger.Errorw("task list failed", "error", err, "owner", owner.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, models.TaskListResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Tasks: tasks,
	})
}

// UpdateTask applies a partial update to one of the caller's tasks. Title,
// description and owner are not reachable through this path.
func (tc *TaskController) UpdateTask(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		invalidParam(c, "id", "Invalid task ID")
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	if req.DueDate == nil && req.Status == nil && req.Priority == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	var upd storage.TaskUpdate
	if req.DueDate != nil {
		dueDate, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			invalidParam(c, "due_date", "Due date must be a valid ISO8601 date")
			return
		}
		upd.DueDate = &dueDate
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		upd.Status = &status
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		upd.Priority = &priority
	}

	task, err := tc.tasks.Update(c.Request.Context(), id, owner, upd)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	if err != nil {
		tc.logger.Errorw("task update failed", "error", err, "taskID", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": task})
}

// DeleteTask soft-deletes one of the caller's tasks and then cascades over
// its subtasks. The two writes are separate; if the cascade fails the task
// stays deleted and the error surfaces to the caller.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	owner, ok := callerID(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		invalidParam(c, "id", "Invalid task ID")
		return
	}

	err = tc.tasks.SoftDelete(c.Request.Context(), id, owner)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}
	if err != nil {
		tc.logger.Errorw("task delete failed", "error", err, "taskID", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete task"})
		return
	}

	if _, err := tc.subtasks.SoftDeleteByTask(c.Request.Context(), id); err != nil {
		// The task flip already happened; the cascade is left incomplete.
		tc.logger.Errorw("subtask cascade failed", "error", err, "taskID", id.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
