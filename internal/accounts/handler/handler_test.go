package handler

import (
	"testing"

	"go.uber.org/zap"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/testutil"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/config"
)

// setupTestEnv wires the full handler stack against an isolated test
// database, with every request running as the fixed test actor.
func setupTestEnv(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, nil, zap.NewNop(), &config.Config{})
	handlers := NewHandlers(services)

	v1 := testutil.ActorGroup(router, "/api/v1")

	accounts := v1.Group("/accounts")
	accounts.POST("", handlers.Account.Create)
	accounts.GET("", handlers.Account.List)
	accounts.GET("/export", handlers.Sheet.Export)
	accounts.POST("/import", handlers.Sheet.Import)
	accounts.GET("/:id", handlers.Account.Get)
	accounts.PUT("/:id", handlers.Account.Update)
	accounts.DELETE("/:id", handlers.Account.Delete)

	contacts := v1.Group("/contacts")
	contacts.POST("", handlers.Contact.Create)
	contacts.GET("", handlers.Contact.List)
	contacts.GET("/:id", handlers.Contact.Get)
	contacts.PUT("/:id", handlers.Contact.Update)
	contacts.DELETE("/:id", handlers.Contact.Delete)

	projects := v1.Group("/projects")
	projects.POST("", handlers.Project.Create)
	projects.GET("", handlers.Project.List)
	projects.GET("/:id", handlers.Project.Get)
	projects.PUT("/:id", handlers.Project.Update)
	projects.DELETE("/:id", handlers.Project.Delete)

	for _, cat := range entity.LookupCategories {
		lookups := v1.Group("/" + cat.Key)
		lookups.POST("", handlers.Lookup.Create(cat.Key))
		lookups.GET("", handlers.Lookup.List(cat.Key))
		lookups.GET("/:id", handlers.Lookup.Get(cat.Key))
		lookups.PUT("/:id", handlers.Lookup.Update(cat.Key))
		lookups.DELETE("/:id", handlers.Lookup.Delete(cat.Key))
	}

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}
