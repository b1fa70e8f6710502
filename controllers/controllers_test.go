package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/AIABHISHEK/task-management-api/controllers"
	"github.com/AIABHISHEK/task-management-api/models"
	"github.com/AIABHISHEK/task-management-api/routes"
	"github.com/AIABHISHEK/task-management-api/storage"
	"github.com/AIABHISHEK/task-management-api/utils"
)

// In-memory stores mirroring the mongo repositories' contracts, so the
// controllers can be exercised end to end through the real router and
// middleware.

type fakeUserStore struct {
	users []*models.User
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	for _, u := range s.users {
		if u.Username == user.Username {
			return primitive.NilObjectID, storage.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	s.users = append(s.users, &copied)
	return user.ID, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

type fakeTaskStore struct {
	tasks []*models.Task
}

func (s *fakeTaskStore) find(id, owner primitive.ObjectID, liveOnly bool) *models.Task {
	for _, task := range s.tasks {
		if task.ID == id && task.OwnerID == owner && (!liveOnly || !task.IsDeleted) {
			return task
		}
	}
	return nil
}

func (s *fakeTaskStore) Insert(_ context.Context, task *models.Task) error {
	task.ID = primitive.NewObjectID()
	copied := *task
	s.tasks = append(s.tasks, &copied)
	return nil
}

func (s *fakeTaskStore) FindLive(_ context.Context, id, owner primitive.ObjectID) (*models.Task, error) {
	if task := s.find(id, owner, true); task != nil {
		copied := *task
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (s *fakeTaskStore) List(_ context.Context, owner primitive.ObjectID, filter storage.TaskFilter, page, limit int64) ([]models.Task, int64, error) {
	matched := []models.Task{}
	for _, task := range s.tasks {
		if task.OwnerID != owner || task.IsDeleted {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.DueBefore != nil && task.DueDate.After(*filter.DueBefore) {
			continue
		}
		matched = append(matched, *task)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DueDate.Before(matched[j].DueDate)
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeTaskStore) Update(_ context.Context, id, owner primitive.ObjectID, upd storage.TaskUpdate) (*models.Task, error) {
	task := s.find(id, owner, true)
	if task == nil {
		return nil, storage.ErrNotFound
	}
	if upd.DueDate != nil {
		task.DueDate = *upd.DueDate
	}
	if upd.Status != nil {
		task.Status = *upd.Status
	}
	if upd.Priority != nil {
		task.Priority = *upd.Priority
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) SoftDelete(_ context.Context, id, owner primitive.ObjectID) error {
	task := s.find(id, owner, true)
	if task == nil {
		return storage.ErrNotFound
	}
	task.IsDeleted = true
	return nil
}

func (s *fakeTaskStore) OwnedIDs(_ context.Context, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, task := range s.tasks {
		if task.OwnerID == owner && !task.IsDeleted {
			ids = append(ids, task.ID)
		}
	}
	return ids, nil
}

func (s *fakeTaskStore) OwnerOf(_ context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	for _, task := range s.tasks {
		if task.ID == id {
			return task.OwnerID, nil
		}
	}
	return primitive.NilObjectID, storage.ErrNotFound
}

type fakeSubtaskStore struct {
	subtasks   []*models.Subtask
	cascadeErr error
}

func (s *fakeSubtaskStore) Insert(_ context.Context, subtask *models.Subtask) error {
	subtask.ID = primitive.NewObjectID()
	copied := *subtask
	s.subtasks = append(s.subtasks, &copied)
	return nil
}

func (s *fakeSubtaskStore) FindLive(_ context.Context, id primitive.ObjectID) (*models.Subtask, error) {
	for _, st := range s.subtasks {
		if st.ID == id && !st.IsDeleted {
			copied := *st
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeSubtaskStore) List(_ context.Context, filter storage.SubtaskFilter, page, limit int64) ([]models.Subtask, int64, error) {
	allowed := map[primitive.ObjectID]bool{}
	for _, id := range filter.TaskIDs {
		allowed[id] = true
	}

	matched := []models.Subtask{}
	for _, st := range s.subtasks {
		if st.IsDeleted || !allowed[st.TaskID] {
			continue
		}
		if filter.Status != nil && st.Status != *filter.Status {
			continue
		}
		matched = append(matched, *st)
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *fakeSubtaskStore) SetStatus(_ context.Context, id primitive.ObjectID, status models.SubtaskStatus) (*models.Subtask, error) {
	for _, st := range s.subtasks {
		if st.ID == id && !st.IsDeleted {
			st.Status = status
			copied := *st
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeSubtaskStore) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	for _, st := range s.subtasks {
		if st.ID == id && !st.IsDeleted {
			st.IsDeleted = true
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *fakeSubtaskStore) SoftDeleteByTask(_ context.Context, taskID primitive.ObjectID) (int64, error) {
	if s.cascadeErr != nil {
		return 0, s.cascadeErr
	}
	var n int64
	for _, st := range s.subtasks {
		if st.TaskID == taskID && !st.IsDeleted {
			st.IsDeleted = true
			n++
		}
	}
	return n, nil
}

// testEnv wires fakes through the real router, middleware included.
type testEnv struct {
	router   *gin.Engine
	tokens   *utils.JWTManager
	users    *fakeUserStore
	tasks    *fakeTaskStore
	subtasks *fakeSubtaskStore
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()
	tokens := utils.NewJWTManager("test-secret", time.Hour)

	env := &testEnv{
		tokens:   tokens,
		users:    &fakeUserStore{},
		tasks:    &fakeTaskStore{},
		subtasks: &fakeSubtaskStore{},
	}

	r := gin.New()
	routes.RegisterRoutes(r, tokens,
		controllers.NewAuthController(env.users, tokens, logger),
		controllers.NewTaskController(env.tasks, env.subtasks, logger),
		controllers.NewSubtaskController(env.subtasks, env.tasks, logger),
	)
	env.router = r
	return env
}

// newUser registers a user directly in the store and returns its id and a
// valid bearer token.
func (env *testEnv) newUser(t *testing.T, username string) (primitive.ObjectID, string) {
	t.Helper()
	hash, err := utils.HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{Username: username, Password: hash}
	id, err := env.users.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	token, err := env.tokens.Generate(id.Hex())
	if err != nil {
		t.Fatalf("Generate token: %v", err)
	}
	return id, token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return body
}
