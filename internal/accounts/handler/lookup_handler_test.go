package handler

import (
	"net/http"
	"testing"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/testutil"
)

func TestLookupCreateAndList(t *testing.T) {
	env := setupTestEnv(t)

	for _, name := range []string{"Sales", "Engineering"} {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/departments", map[string]interface{}{
			"name": name,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/departments", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 departments, got %d", len(items))
	}
	// List is ordered by name.
	if items[0].(map[string]interface{})["name"] != "Engineering" {
		t.Errorf("Expected Engineering first, got %v", items[0])
	}
}

func TestLookupDuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	testutil.SeedLookup(t, env.DB, "units", "Cloud")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/units", map[string]interface{}{
		"name": "Cloud",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := testutil.ParseResponse(w)["message"]; msg != "Unit 'Cloud' already exists" {
		t.Errorf("Unexpected message: %v", msg)
	}
}

func TestLookupRename(t *testing.T) {
	env := setupTestEnv(t)
	id := testutil.SeedLookup(t, env.DB, "verticals", "Retail")
	testutil.SeedLookup(t, env.DB, "verticals", "Banking")

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/verticals/"+id, map[string]interface{}{
		"name": "Banking",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Rename onto a taken name should 400, got %d", w.Code)
	}

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/verticals/"+id, map[string]interface{}{
		"name": "Retail & CPG",
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	if name := testutil.ParseResponse(w2)["data"].(map[string]interface{})["name"]; name != "Retail & CPG" {
		t.Errorf("Expected renamed item, got %v", name)
	}
}

func TestLookupDeleteFreesName(t *testing.T) {
	env := setupTestEnv(t)
	id := testutil.SeedLookup(t, env.DB, "locations", "Pune")

	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/locations/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Uniqueness only holds among active rows, so the name is reusable.
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/locations", map[string]interface{}{
		"name": "Pune",
	})
	if w2.Code != http.StatusCreated {
		t.Fatalf("Expected 201 after delete, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/locations/"+id, nil)
	if w3.Code != http.StatusNotFound {
		t.Errorf("Deleted item should 404, got %d", w3.Code)
	}
}

func TestLookupDeletedNameNotResolvable(t *testing.T) {
	env := setupTestEnv(t)
	id := testutil.SeedLookup(t, env.DB, "statuses", "Prospect")

	w := testutil.DoRequest(env.Router, "DELETE", "/api/v1/statuses/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A row importing the deleted name must fail its lookup.
	csv := importCSV("Acme,ACM,,,,,,,,Prospect,1 Main St,,Pune,,,IN,")
	w2 := testutil.DoUpload(env.Router, "/api/v1/accounts/import", "accounts.csv", csv)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if int(data["failed"].(float64)) != 1 {
		t.Fatalf("Expected 1 failed row, got %v", data)
	}
	rowErr := data["errors"].([]interface{})[0].(map[string]interface{})
	if rowErr["error"] != "Status 'Prospect' does not exist" {
		t.Errorf("Unexpected message: %v", rowErr["error"])
	}
}
