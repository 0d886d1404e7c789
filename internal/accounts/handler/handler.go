package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AnjaliK-AidenAI/AccountsApp/internal/accounts/service"
)

// Handlers is the HTTP handler set wired once at startup.
type Handlers struct {
	Account *AccountHandler
	Contact *ContactHandler
	Project *ProjectHandler
	Lookup  *LookupHandler
	Sheet   *SheetHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Account: NewAccountHandler(svc.Account),
		Contact: NewContactHandler(svc.Contact),
		Project: NewProjectHandler(svc.Project),
		Lookup:  NewLookupHandler(svc.Lookup),
		Sheet:   NewSheetHandler(svc.Import, svc.Export),
	}
}

// Response is the common envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// respondError maps service error types onto the envelope: validation
// and duplicate errors are 400, missing references 404, anything else
// is a 500 with the message intact.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var duplicateErr *service.DuplicateError
	var notFoundErr *service.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Message)
	case errors.As(err, &duplicateErr):
		BadRequest(c, duplicateErr.Message)
	case errors.As(err, &notFoundErr):
		NotFound(c, notFoundErr.Message)
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID returns the acting user id set by the auth middleware.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetSkipLimit reads offset pagination from the query string.
func GetSkipLimit(c *gin.Context) (skip, limit int) {
	skip = 0
	limit = 100

	if s := c.Query("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v
		}
	}
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}
	return skip, limit
}
