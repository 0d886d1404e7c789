package handler

import (
	"net/http"
	"testing"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/testutil"
)

func TestProjectCRUD(t *testing.T) {
	env := setupTestEnv(t)
	account := testutil.SeedAccount(t, env.DB, "Acme", "ACM")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"account_id":   account.ID,
		"project_name": "Platform Rollout",
		"project_code": "ROLL-1",
		"status":       "active",
		"billing_type": "T&M",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	projectID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/projects/"+projectID, map[string]interface{}{
		"status": "on_hold",
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["status"] != "on_hold" {
		t.Errorf("Expected on_hold, got %v", data["status"])
	}
	if data["project_name"] != "Platform Rollout" {
		t.Errorf("Name should be untouched, got %v", data["project_name"])
	}

	w3 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/projects/"+projectID, nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	w4 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects?account_id="+account.ID, nil)
	items := testutil.ParseResponse(w4)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("Deleted project should not be listed, got %d", len(items))
	}
}

func TestProjectDuplicateCode(t *testing.T) {
	env := setupTestEnv(t)
	account := testutil.SeedAccount(t, env.DB, "Acme", "ACM")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"account_id": account.ID, "project_name": "One", "project_code": "ROLL-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"account_id": account.ID, "project_name": "Two", "project_code": "ROLL-1",
	})
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w2.Code, w2.Body.String())
	}
	if msg := testutil.ParseResponse(w2)["message"]; msg != "Project with code 'ROLL-1' already exists" {
		t.Errorf("Unexpected message: %v", msg)
	}
}

func TestProjectRequiresAccount(t *testing.T) {
	env := setupTestEnv(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"account_id": "no-such-account", "project_name": "Orphan",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
