package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/config"
)

// Services is the service set wired once at startup.
type Services struct {
	Account *AccountService
	Contact *ContactService
	Project *ProjectService
	Lookup  *LookupService
	Import  *ImportService
	Export  *ExportService
}

// NewServices creates all services. Redis and MinIO are optional: when
// not configured the lookup cache and import archive are disabled.
func NewServices(db *gorm.DB, repos *repository.Repositories, rdb *redis.Client, logger *zap.Logger, cfg *config.Config) *Services {
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warn("MinIO unavailable, import archiving disabled", zap.Error(err))
			minioClient = nil
		}
	}

	lookupSvc := NewLookupService(repos.Lookups, rdb)
	return &Services{
		Account: NewAccountService(db, repos.Account, repos.Lookups),
		Contact: NewContactService(repos.Contact, repos.Account),
		Project: NewProjectService(repos.Project, repos.Account),
		Lookup:  lookupSvc,
		Import:  NewImportService(db, lookupSvc, minioClient, cfg.MinIO.Bucket, logger),
		Export:  NewExportService(repos.Account),
	}
}

// ValidationError is a caller mistake in the request payload or an
// import row; it maps to HTTP 400 and to a per-row import error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DuplicateError is a unique-business-key collision (account code,
// project code, lookup name); it maps to HTTP 400.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// NotFoundError is a missing referenced entity on a direct API call; it
// maps to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
