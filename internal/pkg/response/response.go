package response

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/shamiri-institute/supervisor-core/internal/pkg/apperrors"
)

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	TotalPage   int   `json:"total_page"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"has_next_page"`
}

// pagedResponse is the envelope for paginated list responses.
type pagedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// OK sends a 200 response. Arrays/slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Paged sends a paginated response.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, pagedResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abortWith(c, http.StatusBadRequest, message, nil)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abortWith(c, http.StatusUnauthorized, "authentication required", nil)
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abortWith(c, http.StatusNotFound, message, nil)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abortWith(c, http.StatusMethodNotAllowed, "method not allowed", nil)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	abortWith(c, http.StatusInternalServerError, err.Error(), nil)
}

// Error maps a kind-tagged domain error to its HTTP status. Validation
// errors carry their field diagnostics in the response body.
func Error(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		abortWith(c, http.StatusNotFound, errMessage(err), nil)
	case apperrors.KindPreconditionFailed:
		abortWith(c, http.StatusPreconditionFailed, errMessage(err), nil)
	case apperrors.KindValidation:
		abortWith(c, http.StatusBadRequest, errMessage(err), apperrors.FieldsOf(err))
	case apperrors.KindConflict:
		abortWith(c, http.StatusConflict, errMessage(err), nil)
	case apperrors.KindProvider:
		abortWith(c, http.StatusBadGateway, errMessage(err), nil)
	default:
		abortWith(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func errMessage(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func abortWith(c *gin.Context, status int, message string, fields []apperrors.FieldError) {
	body := gin.H{"ok": 0, "code": status, "message": message}
	if len(fields) > 0 {
		body["details"] = fields
	}
	c.AbortWithStatusJSON(status, body)
}
