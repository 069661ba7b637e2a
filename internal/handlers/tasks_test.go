package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"project-school/backend/internal/database"
	"project-school/backend/internal/services"
)

func setupTaskRouter(store database.Store) *gin.Engine {
	r := gin.New()
	h := NewTaskHandler(store, services.NewTaskService())
	r.POST("/project-tasks", h.CreateTask)
	r.GET("/project-tasks", h.GetTasks)
	return r
}

func TestCreateTask(t *testing.T) {
	router := setupTaskRouter(database.NewMemory())

	w := performRequest(router, "POST", "/project-tasks", `{"project_id":"legacy-crm","title":"Wire up login"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (body: %s)", w.Code, w.Body.String())
	}

	var created struct {
		ID        string `json:"id"`
		ProjectID string `json:"project_id"`
		Status    string `json:"status"`
		Priority  string `json:"priority"`
	}
	decodeBody(t, w, &created)
	if created.ID == "" {
		t.Error("Expected a generated id in the response")
	}
	// project_id is free text and stored verbatim.
	if created.ProjectID != "legacy-crm" {
		t.Errorf("Expected project_id stored as given, got %s", created.ProjectID)
	}
	if created.Status != "pending" {
		t.Errorf("Expected default status pending, got %s", created.Status)
	}
	if created.Priority != "medium" {
		t.Errorf("Expected default priority medium, got %s", created.Priority)
	}
}

func TestCreateTask_MissingTitle(t *testing.T) {
	router := setupTaskRouter(database.NewMemory())

	w := performRequest(router, "POST", "/project-tasks", `{"project_id":"p1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGetTasks_FilterByProject(t *testing.T) {
	router := setupTaskRouter(database.NewMemory())

	performRequest(router, "POST", "/project-tasks", `{"project_id":"p1","title":"One"}`)
	performRequest(router, "POST", "/project-tasks", `{"project_id":"p2","title":"Two"}`)
	performRequest(router, "POST", "/project-tasks", `{"project_id":"p1","title":"Three"}`)

	w := performRequest(router, "GET", "/project-tasks", "")
	var all []struct {
		Title string `json:"title"`
	}
	decodeBody(t, w, &all)
	if len(all) != 3 {
		t.Fatalf("Expected 3 tasks without filter, got %d", len(all))
	}

	w = performRequest(router, "GET", "/project-tasks?project_id=p1", "")
	var filtered []struct {
		ProjectID string `json:"project_id"`
	}
	decodeBody(t, w, &filtered)
	if len(filtered) != 2 {
		t.Fatalf("Expected 2 tasks for p1, got %d", len(filtered))
	}
	for _, task := range filtered {
		if task.ProjectID != "p1" {
			t.Errorf("Expected only p1 tasks, got %s", task.ProjectID)
		}
	}
}

func TestGetTasks_EmptyList(t *testing.T) {
	router := setupTaskRouter(database.NewMemory())

	w := performRequest(router, "GET", "/project-tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("Expected empty JSON array, got %s", w.Body.String())
	}
}
