package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/thirdpole/pos/internal/auth/domain"
	backupdomain "github.com/thirdpole/pos/internal/backup/domain"
	ledgerdomain "github.com/thirdpole/pos/internal/ledger/domain"
	menudomain "github.com/thirdpole/pos/internal/menu/domain"
	orderdomain "github.com/thirdpole/pos/internal/order/domain"
	sessiondomain "github.com/thirdpole/pos/internal/session/domain"
	settingsdomain "github.com/thirdpole/pos/internal/settings/domain"
	tabledomain "github.com/thirdpole/pos/internal/table/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidPin):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "invalid pin",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, ledgerdomain.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "persistence unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, tabledomain.ErrInvalidName),
		errors.Is(err, tabledomain.ErrInvalidSeats),
		errors.Is(err, tabledomain.ErrInvalidStatus),
		errors.Is(err, menudomain.ErrInvalidName),
		errors.Is(err, menudomain.ErrInvalidPrice),
		errors.Is(err, menudomain.ErrInvalidCategory),
		errors.Is(err, settingsdomain.ErrInvalidName),
		errors.Is(err, settingsdomain.ErrInvalidTaxRate),
		errors.Is(err, settingsdomain.ErrInvalidServiceCharge),
		errors.Is(err, authdomain.ErrPinTooWeak):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, tabledomain.ErrNotFound),
		errors.Is(err, menudomain.ErrItemNotFound),
		errors.Is(err, menudomain.ErrCategoryNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, tabledomain.ErrTableOccupied),
		errors.Is(err, menudomain.ErrCategoryInUse),
		errors.Is(err, menudomain.ErrDuplicateSlug),
		errors.Is(err, sessiondomain.ErrNoTableSelected),
		errors.Is(err, sessiondomain.ErrEmptyCart),
		errors.Is(err, sessiondomain.ErrItemUnavailable),
		errors.Is(err, backupdomain.ErrEmptySnapshot):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
