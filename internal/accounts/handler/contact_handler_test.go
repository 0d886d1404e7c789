package handler

import (
	"net/http"
	"testing"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/testutil"
)

func TestContactCRUD(t *testing.T) {
	env := setupTestEnv(t)
	account := testutil.SeedAccount(t, env.DB, "Acme", "ACM")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/contacts", map[string]interface{}{
		"account_id": account.ID,
		"name":       "John",
		"email":      "john@mail.com",
		"phone":      "9000",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	contactID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/contacts/"+contactID, map[string]interface{}{
		"phone": "9111",
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	if data["phone"] != "9111" {
		t.Errorf("Expected updated phone, got %v", data["phone"])
	}
	if data["name"] != "John" {
		t.Errorf("Name should be untouched, got %v", data["name"])
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/contacts?account_id="+account.ID, nil)
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(items))
	}

	w4 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/contacts/"+contactID, nil)
	if w4.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w4.Code, w4.Body.String())
	}
	w5 := testutil.DoRequest(env.Router, "GET", "/api/v1/contacts/"+contactID, nil)
	if w5.Code != http.StatusNotFound {
		t.Errorf("Deleted contact should 404, got %d", w5.Code)
	}
}

func TestContactRequiresAccount(t *testing.T) {
	env := setupTestEnv(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/contacts", map[string]interface{}{
		"account_id": "no-such-account",
		"name":       "John",
		"email":      "john@mail.com",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestContactRequiresEmail(t *testing.T) {
	env := setupTestEnv(t)
	account := testutil.SeedAccount(t, env.DB, "Acme", "ACM")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/contacts", map[string]interface{}{
		"account_id": account.ID,
		"name":       "NoMail",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if msg := testutil.ParseResponse(w)["message"]; msg != "Email is required" {
		t.Errorf("Unexpected message: %v", msg)
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/contacts", map[string]interface{}{
		"account_id": account.ID,
		"name":       "John",
		"email":      "john@mail.com",
	})
	contactID := testutil.ParseResponse(w2)["data"].(map[string]interface{})["id"].(string)

	// Blanking the email on update is rejected too.
	w3 := testutil.DoRequest(env.Router, "PUT", "/api/v1/contacts/"+contactID, map[string]interface{}{
		"email": "  ",
	})
	if w3.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w3.Code, w3.Body.String())
	}
}

func TestContactMoveBetweenAccounts(t *testing.T) {
	env := setupTestEnv(t)
	first := testutil.SeedAccount(t, env.DB, "Acme", "ACM")
	second := testutil.SeedAccount(t, env.DB, "Globex", "GLX")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/contacts", map[string]interface{}{
		"account_id": first.ID, "name": "John", "email": "john@mail.com",
	})
	contactID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/contacts/"+contactID, map[string]interface{}{
		"account_id": second.ID,
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/contacts?account_id="+second.ID, nil)
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("Expected contact under new account, got %d", len(items))
	}
}
