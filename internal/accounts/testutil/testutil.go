package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/middleware"
)

const (
	TestSchema = "test_accounts"

	// TestActorID is the fixed acting user for tests, matching the
	// pre-auth deployment default.
	TestActorID = "00000000-0000-0000-0000-000000000001"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// projectRoot returns the project root directory by looking for go.mod
func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func loadEnv() {
	root := projectRoot()
	if root != "" {
		godotenv.Load(filepath.Join(root, ".env"))
	}
}

func migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.AutoMigrate(
		&entity.Department{},
		&entity.Unit{},
		&entity.Vertical{},
		&entity.Location{},
		&entity.Status{},
		&entity.Account{},
		&entity.Address{},
		&entity.Contact{},
		&entity.Project{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}
}

// SetupTestDB opens an isolated test database. With DB_HOST set it uses
// postgres and a throwaway schema per test; otherwise it falls back to
// an in-memory sqlite database so the suite runs without infrastructure.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	loadEnv()

	if os.Getenv("DB_HOST") == "" {
		// A uniquely named shared-cache database: every pooled
		// connection sees the same in-memory tables, and each test
		// gets its own database.
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", TestSchema, time.Now().UnixNano())
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			t.Fatalf("Failed to open sqlite test database: %v", err)
		}
		migrate(t, db)
		t.Cleanup(func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		})
		return db
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "accounts")

	baseDSN := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	schemaName := fmt.Sprintf("%s_%d", TestSchema, time.Now().UnixNano()%1000000)

	setupDB, err := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database for schema setup: %v", err)
	}
	setupDB.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schemaName))
	sqlSetup, _ := setupDB.DB()
	sqlSetup.Close()

	testDSN := fmt.Sprintf("%s search_path=%s", baseDSN, schemaName)
	db, err := gorm.Open(postgres.Open(testDSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	migrate(t, db)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		cleanDB, cleanErr := gorm.Open(postgres.Open(baseDSN), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if cleanErr == nil {
			cleanDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schemaName))
			sqlClean, _ := cleanDB.DB()
			if sqlClean != nil {
				sqlClean.Close()
			}
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// ActorGroup creates an API group that runs every request as the fixed
// test actor, mirroring the server's pre-auth mode.
func ActorGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.ActorStub(TestActorID))
}

// DoRequest executes a JSON request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoUpload posts a multipart form with one file field named "file".
func DoUpload(r *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(content)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedLookup inserts one row into a reference table and returns its id.
func SeedLookup(t *testing.T, db *gorm.DB, table, name string) string {
	t.Helper()
	item := entity.LookupItem{
		ID:   uuid.New().String(),
		Name: name,
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	item.CreatedBy = TestActorID
	if err := db.Table(table).Create(&item).Error; err != nil {
		t.Fatalf("Failed to seed %s %q: %v", table, name, err)
	}
	return item.ID
}

// SeedAccount inserts a bare account row.
func SeedAccount(t *testing.T, db *gorm.DB, name, code string) *entity.Account {
	t.Helper()
	account := &entity.Account{
		ID:   uuid.New().String(),
		Name: name,
		Code: code,
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	account.CreatedBy = TestActorID
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to seed account %q: %v", code, err)
	}
	return account
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
