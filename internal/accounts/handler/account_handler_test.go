package handler

import (
	"net/http"
	"testing"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/testutil"
)

func TestAccountCreateAndGet(t *testing.T) {
	env := setupTestEnv(t)
	deptID := testutil.SeedLookup(t, env.DB, "departments", "Engineering")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/accounts", map[string]interface{}{
		"name":          "Acme Corp",
		"code":          "ACM",
		"probability":   80,
		"department_id": deptID,
		"billing_address": map[string]interface{}{
			"address_line1": "1 Main St",
			"city":          "Pune",
			"country_code":  "IN",
		},
		"contacts": []map[string]interface{}{
			{"name": "John", "email": "john@mail.com", "phone": "9000"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["name"] != "Acme Corp" {
		t.Errorf("Expected name Acme Corp, got %v", data["name"])
	}
	if data["probability"].(float64) != 80 {
		t.Errorf("Expected probability 80, got %v", data["probability"])
	}
	accountID := data["id"].(string)

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/accounts/"+accountID, nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	data2 := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	addr := data2["billing_address"].(map[string]interface{})
	if addr["city"] != "Pune" {
		t.Errorf("Expected city Pune, got %v", addr["city"])
	}
	contacts := data2["contacts"].([]interface{})
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}
	dept := data2["department"].(map[string]interface{})
	if dept["name"] != "Engineering" {
		t.Errorf("Expected department Engineering, got %v", dept["name"])
	}
}

func TestAccountDuplicateCode(t *testing.T) {
	env := setupTestEnv(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/accounts", map[string]interface{}{
		"name": "Acme", "code": "ACM",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/accounts", map[string]interface{}{
		"name": "Acme Two", "code": "ACM",
	})
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w2.Code, w2.Body.String())
	}
	resp := testutil.ParseResponse(w2)
	if resp["message"] != "Account with code 'ACM' already exists" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestAccountDeletedLookupNotRendered(t *testing.T) {
	env := setupTestEnv(t)
	deptID := testutil.SeedLookup(t, env.DB, "departments", "Legacy")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/accounts", map[string]interface{}{
		"name": "Acme", "code": "ACM", "department_id": deptID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	accountID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w2 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/departments/"+deptID, nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	// Reads exclude the deleted reference, same as the other relations.
	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/accounts/"+accountID, nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	data := testutil.ParseResponse(w3)["data"].(map[string]interface{})
	if dept, ok := data["department"]; ok && dept != nil {
		t.Errorf("Deleted department should not render, got %v", dept)
	}
}

func TestAccountCreateUnknownLookup(t *testing.T) {
	env := setupTestEnv(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/accounts", map[string]interface{}{
		"name": "Acme", "code": "ACM", "department_id": "no-such-id",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["message"] != "Department with id 'no-such-id' does not exist" {
		t.Errorf("Unexpected message: %v", resp["message"])
	}
}

func TestAccountUpdate(t *testing.T) {
	env := setupTestEnv(t)
	account := testutil.SeedAccount(t, env.DB, "Acme", "ACM")

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/accounts/"+account.ID, map[string]interface{}{
		"name":        "Acme Renamed",
		"probability": 55,
		"billing_address": map[string]interface{}{
			"address_line1": "2 Side St",
			"city":          "Mumbai",
			"country_code":  "IN",
		},
		"contacts": []map[string]interface{}{
			{"name": "Meena", "email": "meena@mail.com"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["name"] != "Acme Renamed" {
		t.Errorf("Expected renamed account, got %v", data["name"])
	}
	if data["code"] != "ACM" {
		t.Errorf("Code should be untouched, got %v", data["code"])
	}
	addr := data["billing_address"].(map[string]interface{})
	if addr["city"] != "Mumbai" {
		t.Errorf("Expected upserted address, got %v", addr["city"])
	}
	contacts := data["contacts"].([]interface{})
	if len(contacts) != 1 {
		t.Fatalf("Expected replaced contact list of 1, got %d", len(contacts))
	}
	if contacts[0].(map[string]interface{})["name"] != "Meena" {
		t.Errorf("Expected contact Meena, got %v", contacts[0])
	}
}

func TestAccountUpdateDuplicateCode(t *testing.T) {
	env := setupTestEnv(t)
	testutil.SeedAccount(t, env.DB, "Acme", "ACM")
	other := testutil.SeedAccount(t, env.DB, "Globex", "GLX")

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/accounts/"+other.ID, map[string]interface{}{
		"code": "ACM",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAccountDeleteCascade(t *testing.T) {
	env := setupTestEnv(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/accounts", map[string]interface{}{
		"name": "Acme", "code": "ACM",
		"billing_address": map[string]interface{}{
			"address_line1": "1 Main St", "city": "Pune", "country_code": "IN",
		},
		"contacts": []map[string]interface{}{
			{"name": "John", "email": "john@mail.com"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	accountID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	wp := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"account_id": accountID, "project_name": "Rollout", "project_code": "ROLL-1",
	})
	if wp.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", wp.Code, wp.Body.String())
	}

	wd := testutil.DoRequest(env.Router, "DELETE", "/api/v1/accounts/"+accountID, nil)
	if wd.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", wd.Code, wd.Body.String())
	}

	if w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/accounts/"+accountID, nil); w2.Code != http.StatusNotFound {
		t.Errorf("Expected deleted account to 404, got %d", w2.Code)
	}

	wc := testutil.DoRequest(env.Router, "GET", "/api/v1/contacts?account_id="+accountID, nil)
	if wc.Code != http.StatusNotFound {
		t.Errorf("Expected contact listing for deleted account to 404, got %d", wc.Code)
	}

	wl := testutil.DoRequest(env.Router, "GET", "/api/v1/accounts", nil)
	list := testutil.ParseResponse(wl)["data"].(map[string]interface{})
	if int(list["total"].(float64)) != 0 {
		t.Errorf("Expected empty active listing, got total %v", list["total"])
	}
}

func TestAccountListPagination(t *testing.T) {
	env := setupTestEnv(t)
	testutil.SeedAccount(t, env.DB, "One", "A1")
	testutil.SeedAccount(t, env.DB, "Two", "A2")
	testutil.SeedAccount(t, env.DB, "Three", "A3")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/accounts?skip=1&limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["total"].(float64)) != 3 {
		t.Errorf("Expected total 3, got %v", data["total"])
	}
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(items))
	}
}

func TestAccountGetMissing(t *testing.T) {
	env := setupTestEnv(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/accounts/no-such-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
