package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
)

// SheetHandler serves the bulk import and export endpoints.
type SheetHandler struct {
	importSvc *service.ImportService
	exportSvc *service.ExportService
}

func NewSheetHandler(importSvc *service.ImportService, exportSvc *service.ExportService) *SheetHandler {
	return &SheetHandler{importSvc: importSvc, exportSvc: exportSvc}
}

// Import POST /api/v1/accounts/import
func (h *SheetHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "file upload required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		InternalError(c, "read upload: "+err.Error())
		return
	}

	summary, err := h.importSvc.Import(c.Request.Context(), header.Filename, data, GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Success(c, summary)
}

// Export GET /api/v1/accounts/export?format=xlsx|csv
func (h *SheetHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	switch format {
	case "csv":
		data, err := h.exportSvc.ExportCSV(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\"accounts.csv\"")
		c.Data(200, "text/csv", data)
	case "xlsx":
		f, err := h.exportSvc.ExportXLSX(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=\"accounts.xlsx\"")
		c.Header("Content-Transfer-Encoding", "binary")
		if err := f.Write(c.Writer); err != nil {
			InternalError(c, "write excel: "+err.Error())
		}
	default:
		BadRequest(c, "format must be 'xlsx' or 'csv'")
	}
}
