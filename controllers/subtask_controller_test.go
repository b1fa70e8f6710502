package controllers_test

import (
	"net/http"
	"testing"
)

func (env *testEnv) createTask(t *testing.T, token, title string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/tasks/create", token, map[string]string{
		"title": title, "due_date": "2025-01-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create task: status = %d: %s", w.Code, w.Body.String())
	}
	return decodeBody(t, w)["task"].(map[string]interface{})["_id"].(string)
}

func (env *testEnv) createSubtask(t *testing.T, token, taskID string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/subtasks/create", token, map[string]string{
		"task_id": taskID, "title": "sub",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create subtask: status = %d: %s", w.Code, w.Body.String())
	}
	return decodeBody(t, w)["subtask"].(map[string]interface{})["_id"].(string)
}

func TestCreateSubtask(t *testing.T) {
	env := newTestEnv()
	_, token := env.newUser(t, "alice")
	taskID := env.createTask(t, token, "T")

	w := env.do(t, http.MethodPost, "/api/subtasks/create", token, map[string]string{
		"task_id": taskID, "title": "sub",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	subtask := decodeBody(t, w)["subtask"].(map[string]interface{})
	if subtask["status"].(float64) != 0 {
		t.Errorf("status = %v, want 0", subtask["status"])
	}
	if subtask["is_deleted"] != false {
		t.Errorf("is_deleted = %v, want false", subtask["is_deleted"])
	}
}

func TestCreateSubtaskForeignTask(t *testing.T) {
	env := newTestEnv()
	_, aliceToken := env.newUser(t, "alice")
	_, bobToken := env.newUser(t, "bob")
	taskID := env.createTask(t, aliceToken, "T")

	w := env.do(t, http.MethodPost, "/api/subtasks/create", bobToken, map[string]string{
		"task_id": taskID, "title": "sub",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestCreateSubtaskMissingFields(t *testing.T) {
	env := newTestEnv()
	_, token := env.newUser(t, "alice")
	taskID := env.createTask(t, token, "T")

	w := env.do(t, http.MethodPost, "/api/subtasks/create", token, map[string]string{"title": "sub"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing task_id status = %d, want 400", w.Code)
	}

	w = env.do(t, http.MethodPost, "/api/subtasks/create", token, map[string]string{"task_id": taskID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing title status = %d, want 400", w.Code)
	}
}

func TestUpdateSubtaskStatusZero(t *testing.T) {
	env := newTestEnv()
	_, token := env.newUser(t, "alice")
	taskID := env.createTask(t, token, "T")
	subtaskID := env.createSubtask(t, token, taskID)

	w := env.do(t, http.MethodPatch, "/api/subtasks/update/"+subtaskID, token, map[string]int{
		"status": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=1 update: status = %d: %s", w.Code, w.Body.String())
	}

	// 0 is a valid value, not an absent field.
	w = env.do(t, http.MethodPatch, "/api/subtasks/update/"+subtaskID, token, map[string]int{
		"status": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=0 update: status = %d: %s", w.Code, w.Body.String())
	}
	subtask := decodeBody(t, w)["subtask"].(map[string]interface{})
	if subtask["status"].(float64) != 0 {
		t.Errorf("status = %v, want 0", subtask["status"])
	}

	// Absent status is rejected.
	w = env.do(t, http.MethodPatch, "/api/subtasks/update/"+subtaskID, token, map[string]int{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("absent status: status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestUpdateSubtaskForeign(t *testing.T) {
	env := newTestEnv()
	_, aliceToken := env.newUser(t, "alice")
	_, bobToken := env.newUser(t, "bob")
	taskID := env.createTask(t, aliceToken, "T")
	subtaskID := env.createSubtask(t, aliceToken, taskID)

	w := env.do(t, http.MethodPatch, "/api/subtasks/update/"+subtaskID, bobToken, map[string]int{
		"status": 1,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestDeleteSubtask(t *testing.T) {
	env := newTestEnv()
	_, token := env.newUser(t, "alice")
	taskID := env.createTask(t, token, "T")
	subtaskID := env.createSubtask(t, token, taskID)

	w := env.do(t, http.MethodDelete, "/api/subtasks/delete/"+subtaskID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	// A deleted subtask no longer matches.
	w = env.do(t, http.MethodDelete, "/api/subtasks/delete/"+subtaskID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestListSubtasksScopedToCaller(t *testing.T) {
	env := newTestEnv()
	_, aliceToken := env.newUser(t, "alice")
	_, bobToken := env.newUser(t, "bob")

	aliceTask := env.createTask(t, aliceToken, "alice-task")
	bobTask := env.createTask(t, bobToken, "bob-task")
	env.createSubtask(t, aliceToken, aliceTask)
	env.createSubtask(t, aliceToken, aliceTask)
	env.createSubtask(t, bobToken, bobTask)

	w := env.do(t, http.MethodGet, "/api/subtasks/get", aliceToken, nil)
	body := decodeBody(t, w)
	if body["total"].(float64) != 2 {
		t.Errorf("alice total = %v, want 2", body["total"])
	}

	// Asking for another user's task by id is a 404, not a listing.
	w = env.do(t, http.MethodGet, "/api/subtasks/get?task_id="+bobTask, aliceToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign task_id status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestListSubtasksStatusFilter(t *testing.T) {
	env := newTestEnv()
	_, token := env.newUser(t, "alice")
	taskID := env.createTask(t, token, "T")

	done := env.createSubtask(t, token, taskID)
	env.createSubtask(t, token, taskID)
	w := env.do(t, http.MethodPatch, "/api/subtasks/update/"+done, token, map[string]int{"status": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/subtasks/get?task_id="+taskID+"&status=1", token, nil)
	body := decodeBody(t, w)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}
	subtasks := body["subtasks"].([]interface{})
	if len(subtasks) != 1 {
		t.Fatalf("len(subtasks) = %d, want 1", len(subtasks))
	}
	if subtasks[0].(map[string]interface{})["_id"] != done {
		t.Errorf("filtered subtask = %v, want %s", subtasks[0].(map[string]interface{})["_id"], done)
	}
}
