package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/entity"
	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/repository"
)

// ExportService writes every active account to the import column set,
// so an exported file re-imports cleanly.
type ExportService struct {
	accounts *repository.AccountRepository
}

func NewExportService(accounts *repository.AccountRepository) *ExportService {
	return &ExportService{accounts: accounts}
}

// ExportXLSX builds a single-sheet workbook, header in row 1.
func (s *ExportService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Accounts"
	f.SetSheetName(f.GetSheetName(0), sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	for i, h := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", col)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
		f.SetColWidth(sheet, col, col, 18)
	}

	for r, account := range accounts {
		values := serializeAccount(&account)
		for c := range exportColumns {
			col, _ := excelize.ColumnNumberToName(c + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), values[c])
		}
	}

	return f, nil
}

// ExportCSV writes the same column set as CSV.
func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if err := w.Write(serializeAccount(&account)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serializeAccount flattens one account into the export column order.
func serializeAccount(account *entity.Account) []string {
	probability := ""
	if account.Probability != nil {
		probability = strconv.Itoa(*account.Probability)
	}

	var department, unit, vertical, location, status string
	if account.Department != nil {
		department = account.Department.Name
	}
	if account.Unit != nil {
		unit = account.Unit.Name
	}
	if account.Vertical != nil {
		vertical = account.Vertical.Name
	}
	if account.Location != nil {
		location = account.Location.Name
	}
	if account.Status != nil {
		status = account.Status.Name
	}

	var line1, line2, city, state, zip, country string
	if addr := account.BillingAddress; addr != nil {
		line1 = addr.AddressLine1
		line2 = addr.AddressLine2
		city = addr.City
		state = addr.State
		zip = addr.Zip
		country = addr.CountryCode
	}

	return []string{
		account.Name,
		account.Code,
		probability,
		account.AccountPartner,
		account.DeliveryPartner,
		department,
		unit,
		vertical,
		location,
		status,
		line1,
		line2,
		city,
		state,
		zip,
		country,
		serializeContacts(account.Contacts),
	}
}

// serializeContacts joins contacts as "Name/Email/Phone; ...", always
// three segments per entry so the exporter's output re-imports as-is.
func serializeContacts(contacts []entity.Contact) string {
	if len(contacts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(contacts))
	for _, c := range contacts {
		parts = append(parts, fmt.Sprintf("%s/%s/%s", c.Name, c.Email, c.Phone))
	}
	return strings.Join(parts, "; ")
}
