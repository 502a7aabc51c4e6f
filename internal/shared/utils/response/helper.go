package response

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes shared across features
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	CodeInternal     = "INTERNAL_ERROR"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes a structured error body and aborts the chain
func RespondError(c *gin.Context, code int, errorCode, message string) {
	RespondErrorDetails(c, code, errorCode, message, nil)
}

// RespondErrorDetails writes a structured error body with extra details
func RespondErrorDetails(c *gin.Context, code int, errorCode, message string, details map[string]string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Status:     "error",
		StatusCode: code,
		Message:    message,
		ErrorCode:  errorCode,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	})
}

// RespondValidationError reports binding or validation failures as fieldErrors
func RespondValidationError(c *gin.Context, err error) {
	body := ErrorResponse{
		Status:     "error",
		StatusCode: http.StatusBadRequest,
		ErrorCode:  CodeValidation,
		Timestamp:  time.Now().UTC(),
	}
	if fieldErrors := FieldErrors(err); len(fieldErrors) > 0 {
		body.FieldErrors = fieldErrors
	} else {
		body.Details = map[string]string{"body": "Request body is malformed"}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// RespondFieldErrors reports domain-level field validation failures
func RespondFieldErrors(c *gin.Context, fieldErrors map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status:      "error",
		StatusCode:  http.StatusBadRequest,
		ErrorCode:   CodeValidation,
		FieldErrors: fieldErrors,
		Timestamp:   time.Now().UTC(),
	})
}

// RespondText writes a bare text body
func RespondText(c *gin.Context, code int, text string) {
	c.Abort()
	c.String(code, text)
}

// NewValidator returns a validator that reports json field names
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldErrors flattens validator errors into field -> message
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
