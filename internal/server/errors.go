package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	articledomain "github.com/smallbiznis/cube/internal/article/domain"
	"gorm.io/gorm"
)

const articleNotFoundDetail = "Article non trouvé"

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

// ErrorHandlingMiddleware turns collected handler errors into structured
// responses. Unrecognized errors become a generic 500 with no internal detail.
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

		status, body := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, body)
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
	return newValidationError("request", "invalid_request", "invalid request body")
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

func mapError(err error) (int, any) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusUnprocessableEntity, errorResponse{Error: errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}}
	}

	if isArticleValidationError(err) {
		code := err.Error()
		return http.StatusUnprocessableEntity, errorResponse{Error: errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}}
	}

	if isNotFoundError(err) {
		return http.StatusNotFound, gin.H{"detail": articleNotFoundDetail}
	}

	return http.StatusInternalServerError, errorResponse{Error: errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isArticleValidationError(err error) bool {
	switch {
	case errors.Is(err, articledomain.ErrInvalidTitle),
		errors.Is(err, articledomain.ErrInvalidPrice),
		errors.Is(err, articledomain.ErrInvalidCategory),
		errors.Is(err, articledomain.ErrInvalidLocation),
		errors.Is(err, articledomain.ErrInvalidEmail),
		errors.Is(err, articledomain.ErrInvalidSkip),
		errors.Is(err, articledomain.ErrInvalidLimit),
		errors.Is(err, articledomain.ErrInvalidID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	return errors.Is(err, articledomain.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

func validationErrorField(code string) string {
	switch code {
	case "invalid_title":
		return "title"
	case "invalid_price":
		return "price"
	case "invalid_category":
		return "category"
	case "invalid_location":
		return "location"
	case "invalid_contact_email":
		return "contact_email"
	case "invalid_skip":
		return "skip"
	case "invalid_limit":
		return "limit"
	case "invalid_id":
		return "id"
	default:
		return "request"
	}
}

func validationErrorMessage(code string) string {
	switch code {
	case "invalid_title":
		return "title must be between 3 and 255 characters"
	case "invalid_price":
		return "price must be greater than or equal to 0"
	case "invalid_category":
		return "category must be at most 100 characters"
	case "invalid_location":
		return "location must be at most 255 characters"
	case "invalid_contact_email":
		return "contact_email must be a valid email address"
	case "invalid_skip":
		return "skip must be greater than or equal to 0"
	case "invalid_limit":
		return "limit must be between 1 and 100"
	case "invalid_id":
		return "id must be an integer"
	default:
		return "invalid value"
	}
}
