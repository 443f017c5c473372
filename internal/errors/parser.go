package errors

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a presentable message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and transport errors into user-presentable
// codes and messages. Sensitive detail stays out of the message; the original
// error is expected to have been logged at the call site.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL errors carry a SQLSTATE class via lib/pq.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return parseDuplicateKeyError(pqErr, context)
		case "23503": // foreign_key_violation
			return parseForeignKeyError(pqErr, context)
		case "23502": // not_null_violation
			return ErrorInfo{
				Code:    ValidationRequired,
				Message: "A required field is missing",
			}
		case "23514": // check_violation
			return ErrorInfo{
				Code:    ValidationInvalidInput,
				Message: "A field value is out of range",
			}
		}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is temporarily unavailable. Please try again shortly",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(pqErr *pq.Error, context string) ErrorInfo {
	constraint := strings.ToLower(pqErr.Constraint)

	if strings.Contains(constraint, "categories") || strings.Contains(constraint, "name") {
		if strings.Contains(context, "category") {
			return ErrorInfo{
				Code:    ResourceAlreadyExists,
				Message: "A category with this name already exists",
			}
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(pqErr *pq.Error, context string) ErrorInfo {
	constraint := strings.ToLower(pqErr.Constraint)

	if strings.Contains(constraint, "category") {
		return ErrorInfo{
			Code:    CatalogCategoryNotFound,
			Message: "The selected category does not exist",
		}
	}
	if strings.Contains(constraint, "furniture") || strings.Contains(constraint, "item") {
		return ErrorInfo{
			Code:    CatalogItemNotFound,
			Message: "The referenced furniture item does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceConflict,
		Message: "This record is referenced by other data",
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "category") {
		return "Category not found"
	}
	if strings.Contains(contextLower, "furniture") || strings.Contains(contextLower, "item") {
		return "Furniture item not found"
	}
	if strings.Contains(contextLower, "order") {
		return "Order not found"
	}

	return "The requested record was not found"
}

// ParseAndRespond parses the error and writes the standard error payload.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Saving failed. Please try again shortly"
	}
	if strings.Contains(contextLower, "update") {
		return "Updating failed. Please try again shortly"
	}
	if strings.Contains(contextLower, "delete") {
		return "Deleting failed. Please try again shortly"
	}

	return "Something went wrong. Please try again shortly"
}
