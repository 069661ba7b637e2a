package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"project-school/backend/internal/database"
	"project-school/backend/internal/models"
	"project-school/backend/internal/services"
)

func setupResourceRouter(store database.Store) *gin.Engine {
	r := gin.New()
	h := NewResourceHandler(store, services.NewResourceService())
	r.POST("/resources", h.CreateResource)
	r.GET("/resources", h.GetResources)
	r.GET("/resources/:resource_id", h.GetResourceByID)
	r.PUT("/resources/:resource_id", h.UpdateResource)
	r.DELETE("/resources/:resource_id", h.DeleteResource)
	return r
}

func TestCreateResource(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "POST", "/resources", `{"name":"Go Tour","link":"https://go.dev/tour"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (body: %s)", w.Code, w.Body.String())
	}

	var created struct {
		ID       string   `json:"id"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
	}
	decodeBody(t, w, &created)
	if created.ID == "" {
		t.Error("Expected a generated id in the response")
	}
	if created.Category != "General" {
		t.Errorf("Expected default category General, got %s", created.Category)
	}
	if created.Tags == nil || len(created.Tags) != 0 {
		t.Errorf("Expected empty tags array, got %v", created.Tags)
	}
}

func TestCreateResource_MissingLink(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "POST", "/resources", `{"name":"No link"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestGetResources_NewestFirst(t *testing.T) {
	store := database.NewMemory()
	router := setupResourceRouter(store)

	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()
	store.Insert(ctx, models.ResourceCollection, models.Resource{Name: "old", Link: "l", Category: "General", Tags: []string{}, CreatedAt: base})
	store.Insert(ctx, models.ResourceCollection, models.Resource{Name: "new", Link: "l", Category: "General", Tags: []string{}, CreatedAt: base.Add(time.Hour)})

	w := performRequest(router, "GET", "/resources", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var resources []struct {
		Name string `json:"name"`
	}
	decodeBody(t, w, &resources)
	if len(resources) != 2 {
		t.Fatalf("Expected 2 resources, got %d", len(resources))
	}
	if resources[0].Name != "new" || resources[1].Name != "old" {
		t.Errorf("Expected newest first, got %v", resources)
	}
}

func TestGetResourceByID(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "POST", "/resources", `{"name":"Docs","link":"https://example.com"}`)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)

	w = performRequest(router, "GET", "/resources/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var fetched struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeBody(t, w, &fetched)
	if fetched.ID != created.ID || fetched.Name != "Docs" {
		t.Errorf("Expected the created resource back, got %+v", fetched)
	}
}

func TestGetResourceByID_NotFound(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "GET", "/resources/64b000000000000000000000", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "Resource not found" {
		t.Errorf("Expected resource not found error, got %q", body.Error)
	}
}

func TestGetResourceByID_InvalidID(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "GET", "/resources/short", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
}

func TestUpdateResource_PartialMerge(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "POST", "/resources", `{"name":"Original","description":"keep me","link":"https://example.com","category":"Video"}`)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)

	w = performRequest(router, "PUT", "/resources/"+created.ID, `{"name":"Renamed","tags":["go","tutorial"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	var updated struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}
	decodeBody(t, w, &updated)
	if updated.Name != "Renamed" {
		t.Errorf("Expected name to change, got %s", updated.Name)
	}
	if updated.Description != "keep me" || updated.Category != "Video" {
		t.Errorf("Expected untouched fields to survive, got %+v", updated)
	}
	if len(updated.Tags) != 2 {
		t.Errorf("Expected replaced tags, got %v", updated.Tags)
	}
}

func TestUpdateResource_NoFields(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "POST", "/resources", `{"name":"R","link":"https://example.com"}`)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)

	w = performRequest(router, "PUT", "/resources/"+created.ID, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	if body.Error != "No fields to update" {
		t.Errorf("Expected no fields error, got %q", body.Error)
	}
}

func TestUpdateResource_NotFound(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "PUT", "/resources/64b000000000000000000000", `{"name":"ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}

func TestDeleteResource(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "POST", "/resources", `{"name":"Temp","link":"https://example.com"}`)
	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)

	w = performRequest(router, "DELETE", "/resources/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	w = performRequest(router, "GET", "/resources/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", w.Code)
	}
}

func TestDeleteResource_NotFound(t *testing.T) {
	router := setupResourceRouter(database.NewMemory())

	w := performRequest(router, "DELETE", "/resources/64b000000000000000000000", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", w.Code)
	}
}
