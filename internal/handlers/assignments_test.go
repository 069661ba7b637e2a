package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"project-school/backend/internal/database"
	"project-school/backend/internal/services"
)

func setupAssignmentRouter(store database.Store) *gin.Engine {
	r := gin.New()
	projects := NewProjectHandler(store, services.NewProjectService())
	tasks := NewTaskHandler(store, services.NewTaskService())
	assignments := NewAssignmentHandler(store, services.NewAssignmentService())
	r.POST("/project", projects.CreateProject)
	r.POST("/project-tasks", tasks.CreateTask)
	r.POST("/project-tasks/user-tasks", assignments.LinkTask)
	r.GET("/project-tasks/user-tasks/:user_id", assignments.GetUserTasks)
	r.DELETE("/project-tasks/user-tasks/:user_id/:task_id", assignments.UnlinkTask)
	r.PUT("/project-tasks/user-tasks/:user_id/:task_id/complete", assignments.CompleteTask)
	r.PUT("/project-tasks/user-tasks/:user_id/:task_id/incomplete", assignments.IncompleteTask)
	r.PUT("/project-tasks/user-tasks/:user_id/:task_id/active", assignments.ActivateTask)
	r.POST("/project-tasks/user-tasks/:user_id/:task_id/comments", assignments.AddComment)
	r.DELETE("/project-tasks/delete-assigned-tasks/:user_id", assignments.ClearTasks)
	return r
}

func createTestTask(t *testing.T, router *gin.Engine, projectID, title string) string {
	t.Helper()
	w := performRequest(router, "POST", "/project-tasks", fmt.Sprintf(`{"project_id":%q,"title":%q}`, projectID, title))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected task create to succeed, got %d (body: %s)", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)
	return created.ID
}

type assignedTaskView struct {
	TaskID         string  `json:"taskId"`
	Title          string  `json:"title"`
	ProjectName    string  `json:"projectName"`
	SequenceID     *int    `json:"sequenceId"`
	TaskStatus     string  `json:"taskStatus"`
	CompletionDate *string `json:"completionDate"`
	Comments       []struct {
		Comment   string `json:"comment"`
		CommentBy string `json:"commentBy"`
	} `json:"comments"`
}

func getUserTasks(t *testing.T, router *gin.Engine, userID string) []assignedTaskView {
	t.Helper()
	w := performRequest(router, "GET", "/project-tasks/user-tasks/"+userID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected user task listing to succeed, got %d (body: %s)", w.Code, w.Body.String())
	}
	var tasks []assignedTaskView
	decodeBody(t, w, &tasks)
	return tasks
}

func TestLinkTask(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())
	taskID := createTestTask(t, router, "p1", "Write docs")

	w := performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, taskID))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	if body.Status != "success" || body.Message != "Task assigned to user" {
		t.Errorf("Expected assignment success envelope, got %+v", body)
	}

	// Linking the same task twice is rejected.
	w = performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, taskID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400 on duplicate link, got %d", w.Code)
	}
	var dup struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &dup)
	if dup.Error != "Task already assigned to user" {
		t.Errorf("Expected duplicate assignment error, got %q", dup.Error)
	}
}

func TestLinkTask_TaskNotFound(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "POST", "/project-tasks/user-tasks", `{"userId":"alice","taskId":"64b000000000000000000000"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "Task not found" {
		t.Errorf("Expected task not found error, got %q", body.Error)
	}
}

func TestLinkTask_InvalidTaskID(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "POST", "/project-tasks/user-tasks", `{"userId":"alice","taskId":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "Invalid Task ID" {
		t.Errorf("Expected invalid task id error, got %q", body.Error)
	}
}

func TestGetUserTasks_JoinAndOrder(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "POST", "/project", `{"name":"Apollo"}`)
	var project struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &project)

	alpha := createTestTask(t, router, project.ID, "Alpha")
	beta := createTestTask(t, router, "external-tracker", "Beta")
	gamma := createTestTask(t, router, project.ID, "Gamma")

	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q,"sequenceId":2}`, alpha))
	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, beta))
	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q,"sequenceId":1}`, gamma))

	tasks := getUserTasks(t, router, "alice")
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 assigned tasks, got %d", len(tasks))
	}

	// Ordered by sequenceId with unsequenced entries last.
	if tasks[0].Title != "Gamma" || tasks[1].Title != "Alpha" || tasks[2].Title != "Beta" {
		t.Errorf("Expected order Gamma, Alpha, Beta, got %s, %s, %s", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
	if tasks[2].SequenceID != nil {
		t.Errorf("Expected unsequenced entry to stay unsequenced, got %v", *tasks[2].SequenceID)
	}
	if tasks[0].ProjectName != "Apollo" {
		t.Errorf("Expected project name joined in, got %s", tasks[0].ProjectName)
	}
	if tasks[2].ProjectName != "Unknown Project" {
		t.Errorf("Expected fallback project name for free-text reference, got %s", tasks[2].ProjectName)
	}
	if tasks[0].TaskStatus != "pending" {
		t.Errorf("Expected fresh assignments to be pending, got %s", tasks[0].TaskStatus)
	}
}

func TestGetUserTasks_NoAssignments(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "GET", "/project-tasks/user-tasks/nobody", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("Expected empty JSON array, got %s", w.Body.String())
	}
}

func TestUnlinkTask(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())
	taskID := createTestTask(t, router, "p1", "Removable")

	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, taskID))

	w := performRequest(router, "DELETE", "/project-tasks/user-tasks/alice/"+taskID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	if body.Message != "Task removed from user" {
		t.Errorf("Expected removal message, got %q", body.Message)
	}

	if tasks := getUserTasks(t, router, "alice"); len(tasks) != 0 {
		t.Errorf("Expected no tasks after unlink, got %d", len(tasks))
	}

	// The document still exists but no longer carries the task.
	w = performRequest(router, "DELETE", "/project-tasks/user-tasks/alice/"+taskID, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404 on second unlink, got %d", w.Code)
	}
	var second struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &second)
	if second.Error != "Task not found in user's assignments" {
		t.Errorf("Expected missing entry error, got %q", second.Error)
	}
}

func TestUnlinkTask_UserNotFound(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "DELETE", "/project-tasks/user-tasks/nobody/64b000000000000000000000", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "User assignment not found" {
		t.Errorf("Expected missing document error, got %q", body.Error)
	}
}

func TestTaskStatusTransitions(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())
	taskID := createTestTask(t, router, "p1", "Lifecycle")

	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, taskID))

	base := "/project-tasks/user-tasks/alice/" + taskID
	w := performRequest(router, "PUT", base+"/complete", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	if body.Message != "Task marked as complete" {
		t.Errorf("Expected completion message, got %q", body.Message)
	}

	tasks := getUserTasks(t, router, "alice")
	if tasks[0].TaskStatus != "completed" {
		t.Errorf("Expected completed status, got %s", tasks[0].TaskStatus)
	}
	if tasks[0].CompletionDate == nil || *tasks[0].CompletionDate == "" {
		t.Error("Expected completionDate to be stamped on completion")
	}

	// Reopening clears the completion date.
	w = performRequest(router, "PUT", base+"/incomplete", "")
	decodeBody(t, w, &body)
	if body.Message != "Task marked as incomplete" {
		t.Errorf("Expected incomplete message, got %q", body.Message)
	}
	tasks = getUserTasks(t, router, "alice")
	if tasks[0].TaskStatus != "pending" {
		t.Errorf("Expected pending status after reopen, got %s", tasks[0].TaskStatus)
	}
	if tasks[0].CompletionDate != nil {
		t.Errorf("Expected completionDate cleared, got %v", *tasks[0].CompletionDate)
	}

	w = performRequest(router, "PUT", base+"/active", "")
	decodeBody(t, w, &body)
	if body.Message != "Task marked as active" {
		t.Errorf("Expected active message, got %q", body.Message)
	}
	tasks = getUserTasks(t, router, "alice")
	if tasks[0].TaskStatus != "active" {
		t.Errorf("Expected active status, got %s", tasks[0].TaskStatus)
	}
}

func TestSetStatus_AssignmentNotFound(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "PUT", "/project-tasks/user-tasks/alice/64b000000000000000000000/complete", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "Task assignment not found" {
		t.Errorf("Expected assignment not found error, got %q", body.Error)
	}
}

func TestAddComment(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())
	taskID := createTestTask(t, router, "p1", "Discussed")

	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, taskID))

	w := performRequest(router, "POST", "/project-tasks/user-tasks/alice/"+taskID+"/comments",
		`{"comment":"Looks good","commentBy":"mentor"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	if body.Message != "Comment added successfully" {
		t.Errorf("Expected comment message, got %q", body.Message)
	}

	tasks := getUserTasks(t, router, "alice")
	if len(tasks[0].Comments) != 1 {
		t.Fatalf("Expected 1 comment, got %d", len(tasks[0].Comments))
	}
	if tasks[0].Comments[0].Comment != "Looks good" || tasks[0].Comments[0].CommentBy != "mentor" {
		t.Errorf("Expected comment to round-trip, got %+v", tasks[0].Comments[0])
	}
}

func TestAddComment_MissingFields(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "POST", "/project-tasks/user-tasks/alice/64b000000000000000000000/comments",
		`{"comment":"anonymous"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestClearTasks(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())
	first := createTestTask(t, router, "p1", "One")
	second := createTestTask(t, router, "p1", "Two")

	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, first))
	performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, second))

	w := performRequest(router, "DELETE", "/project-tasks/delete-assigned-tasks/alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	decodeBody(t, w, &body)
	if body.UserID != "alice" {
		t.Errorf("Expected userId echoed back, got %s", body.UserID)
	}
	if body.Message != "Successfully cleared all assigned tasks for user alice" {
		t.Errorf("Expected clear message, got %q", body.Message)
	}

	if tasks := getUserTasks(t, router, "alice"); len(tasks) != 0 {
		t.Errorf("Expected no tasks after clearing, got %d", len(tasks))
	}

	// The emptied document is reused by the next link.
	w = performRequest(router, "POST", "/project-tasks/user-tasks", fmt.Sprintf(`{"userId":"alice","taskId":%q}`, first))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected relink after clear to succeed, got %d", w.Code)
	}
}

func TestClearTasks_NoAssignments(t *testing.T) {
	router := setupAssignmentRouter(database.NewMemory())

	w := performRequest(router, "DELETE", "/project-tasks/delete-assigned-tasks/nobody", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "No assignments found for this user" {
		t.Errorf("Expected no assignments error, got %q", body.Error)
	}
}
