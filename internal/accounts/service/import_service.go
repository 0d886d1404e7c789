package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gorm.io/gorm"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
)

// Import column names, shared with the exporter.
const (
	colName            = "Name"
	colCode            = "Code"
	colProbability     = "Probability"
	colAccountPartner  = "Account Partner"
	colDeliveryPartner = "Delivery Partner"
	colDepartment      = "Department"
	colUnit            = "Unit"
	colVertical        = "Vertical"
	colLocation        = "Location"
	colStatus          = "Status"
	colAddressLine1    = "Address Line1"
	colAddressLine2    = "Address Line2"
	colCity            = "City"
	colState           = "State"
	colZip             = "Zip"
	colCountry         = "Country"
	colContacts        = "Contacts (Name/Email/Phone)"
)

// exportColumns is the header row, in order, for import and export.
var exportColumns = []string{
	colName, colCode, colProbability, colAccountPartner, colDeliveryPartner,
	colDepartment, colUnit, colVertical, colLocation, colStatus,
	colAddressLine1, colAddressLine2, colCity, colState, colZip, colCountry,
	colContacts,
}

// ImportSummary is the per-batch outcome. Processed counts only rows
// that committed; each failed row carries its 1-based sheet index (the
// header is row 1, so data rows start at 2).
type ImportSummary struct {
	Processed int        `json:"processed"`
	Created   int        `json:"created"`
	Updated   int        `json:"updated"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors"`
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportService reconciles uploaded account spreadsheets against the
// database: one transaction per row, create-or-update by account code.
// Uploaded files are archived to MinIO when a client is configured.
type ImportService struct {
	db      *gorm.DB
	lookups *LookupService
	store   *minio.Client
	bucket  string
	logger  *zap.Logger
}

func NewImportService(db *gorm.DB, lookups *LookupService, store *minio.Client, bucket string, logger *zap.Logger) *ImportService {
	return &ImportService{db: db, lookups: lookups, store: store, bucket: bucket, logger: logger}
}

// Import parses the uploaded file and applies each row in its own
// transaction. A row failure rolls back only that row and is recorded
// in the summary; processing continues with the next row.
func (s *ImportService) Import(ctx context.Context, filename string, data []byte, actor string) (*ImportSummary, error) {
	if len(data) == 0 {
		return nil, &ValidationError{Message: "File is empty"}
	}

	var rows []map[string]string
	var err error
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		rows, err = parseCSV(data)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		rows, err = parseXLSX(data)
	default:
		return nil, &ValidationError{Message: "File must be CSV or XLSX"}
	}
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("Failed to parse file: %v", err)}
	}
	if len(rows) == 0 {
		return nil, &ValidationError{Message: "No data found in file"}
	}

	summary := &ImportSummary{Errors: []RowError{}}
	for i, row := range rows {
		idx := i + 2 // row 1 is the header
		var outcome string
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txErr error
			outcome, txErr = s.processRow(ctx, tx, row, actor)
			return txErr
		})
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, RowError{Row: idx, Error: err.Error()})
			continue
		}
		summary.Processed++
		if outcome == "created" {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	s.archive(ctx, filename, data)
	return summary, nil
}

// processRow reconciles one normalized row: update the account matched
// by code, or create a new one. Update overwrites every mutable field
// with the row's values, upserts the address and replaces the contact
// list.
func (s *ImportService) processRow(ctx context.Context, tx *gorm.DB, row map[string]string, actor string) (string, error) {
	name := cell(row, colName)
	code := cell(row, colCode)
	if name == "" {
		return "", &ValidationError{Message: "Name is required"}
	}
	if code == "" {
		return "", &ValidationError{Message: "Code is required"}
	}

	var account entity.Account
	isUpdate := true
	err := tx.Where("code = ? AND is_deleted = ?", code, false).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		isUpdate = false
	} else if err != nil {
		return "", err
	}

	var probability *int
	if raw := cell(row, colProbability); raw != "" {
		p, err := parseProbability(raw)
		if err != nil {
			return "", err
		}
		probability = &p
	}

	accountPartner := cell(row, colAccountPartner)
	deliveryPartner := cell(row, colDeliveryPartner)

	departmentID, err := s.resolveRef(ctx, colDepartment, row)
	if err != nil {
		return "", err
	}
	unitID, err := s.resolveRef(ctx, colUnit, row)
	if err != nil {
		return "", err
	}
	verticalID, err := s.resolveRef(ctx, colVertical, row)
	if err != nil {
		return "", err
	}
	locationID, err := s.resolveRef(ctx, colLocation, row)
	if err != nil {
		return "", err
	}
	statusID, err := s.resolveRef(ctx, colStatus, row)
	if err != nil {
		return "", err
	}

	line1 := cell(row, colAddressLine1)
	city := cell(row, colCity)
	country := cell(row, colCountry)
	if line1 == "" {
		return "", &ValidationError{Message: "Address Line1 is required"}
	}
	if city == "" {
		return "", &ValidationError{Message: "City is required"}
	}
	if country == "" {
		return "", &ValidationError{Message: "Country is required"}
	}
	line2 := cell(row, colAddressLine2)
	state := cell(row, colState)
	zip := cell(row, colZip)

	contacts, err := parseContacts(row[colContacts])
	if err != nil {
		return "", err
	}

	now := time.Now()

	if isUpdate {
		account.Name = name
		account.Probability = probability
		account.AccountPartner = accountPartner
		account.DeliveryPartner = deliveryPartner
		account.DepartmentID = departmentID
		account.UnitID = unitID
		account.VerticalID = verticalID
		account.LocationID = locationID
		account.StatusID = statusID
		account.UpdatedAt = now
		account.UpdatedBy = actor
		if err := tx.Save(&account).Error; err != nil {
			return "", err
		}
	} else {
		account = entity.Account{
			ID:              uuid.New().String(),
			Name:            name,
			Code:            code,
			Probability:     probability,
			AccountPartner:  accountPartner,
			DeliveryPartner: deliveryPartner,
			DepartmentID:    departmentID,
			UnitID:          unitID,
			VerticalID:      verticalID,
			LocationID:      locationID,
			StatusID:        statusID,
		}
		account.CreatedAt = now
		account.UpdatedAt = now
		account.CreatedBy = actor
		if err := tx.Create(&account).Error; err != nil {
			return "", err
		}
	}

	// Address upsert.
	var addr entity.Address
	err = tx.Where("account_id = ?", account.ID).First(&addr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		addr = entity.Address{
			AccountID:    account.ID,
			AddressLine1: line1,
			AddressLine2: line2,
			City:         city,
			State:        state,
			Zip:          zip,
			CountryCode:  country,
		}
		addr.CreatedAt = now
		addr.UpdatedAt = now
		addr.CreatedBy = actor
		if err := tx.Create(&addr).Error; err != nil {
			return "", err
		}
	case err != nil:
		return "", err
	default:
		addr.AddressLine1 = line1
		addr.AddressLine2 = line2
		addr.City = city
		addr.State = state
		addr.Zip = zip
		addr.CountryCode = country
		addr.IsDeleted = false
		addr.DeletedAt = nil
		addr.DeletedBy = ""
		addr.UpdatedAt = now
		addr.UpdatedBy = actor
		if err := tx.Save(&addr).Error; err != nil {
			return "", err
		}
	}

	// Replace contacts: imports discard the previous rows outright.
	if err := tx.Where("account_id = ?", account.ID).Delete(&entity.Contact{}).Error; err != nil {
		return "", err
	}
	for _, c := range contacts {
		contact := entity.Contact{
			ID:        uuid.New().String(),
			AccountID: account.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
		}
		contact.CreatedAt = now
		contact.UpdatedAt = now
		contact.CreatedBy = actor
		if err := tx.Create(&contact).Error; err != nil {
			return "", err
		}
	}

	if isUpdate {
		return "updated", nil
	}
	return "created", nil
}

func (s *ImportService) resolveRef(ctx context.Context, label string, row map[string]string) (*string, error) {
	name := cell(row, label)
	if name == "" {
		return nil, nil
	}
	id, err := s.lookups.ResolveByName(ctx, label, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// archive stores the raw upload for audit; failures are logged, never
// surfaced to the caller.
func (s *ImportService) archive(ctx context.Context, filename string, data []byte) {
	if s.store == nil {
		return
	}
	object := fmt.Sprintf("imports/%s_%s", time.Now().Format("20060102T150405"), filename)
	_, err := s.store.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		s.logger.Warn("archive import file failed", zap.String("object", object), zap.Error(err))
	}
}

// cell returns the trimmed value of a column, "" when absent.
func cell(row map[string]string, key string) string {
	return strings.TrimSpace(row[key])
}

func parseProbability(raw string) (int, error) {
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Message: "Probability must be a number"}
	}
	return p, nil
}

// parseContacts parses "Name/Email/Phone; Name2/Email2" into contact
// inputs; the phone segment is optional, name and email are not.
func parseContacts(raw string) ([]ContactInput, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []ContactInput{}, nil
	}

	var contacts []ContactInput
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "/")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid contact format '%s'. Expected: Name/Email/Phone", entry)}
		}
		contact := ContactInput{Name: parts[0], Email: parts[1]}
		if len(parts) > 2 {
			contact.Phone = parts[2]
		}
		contacts = append(contacts, contact)
	}
	return contacts, nil
}

// parseCSV reads a header-keyed CSV, tolerating a UTF-8 BOM.
func parseCSV(data []byte) ([]map[string]string, error) {
	decoder := unicode.UTF8.NewDecoder()
	reader := csv.NewReader(transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(decoder)))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseXLSX reads the first sheet of a workbook, header in row 1.
func parseXLSX(data []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(raw) < 2 {
		return nil, nil
	}

	header := raw[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for _, record := range raw[1:] {
		row := make(map[string]string, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
