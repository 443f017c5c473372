package errors

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError_RecordNotFound(t *testing.T) {
	info := ParseError(gorm.ErrRecordNotFound, "furniture item lookup")
	assert.Equal(t, ResourceNotFound, info.Code)
	assert.Equal(t, "Furniture item not found", info.Message)

	info = ParseError(gorm.ErrRecordNotFound, "order lookup")
	assert.Equal(t, "Order not found", info.Message)
}

func TestParseError_UniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Constraint: "categories_name_key"}

	info := ParseError(pqErr, "category create")
	assert.Equal(t, ResourceAlreadyExists, info.Code)
	assert.Equal(t, "A category with this name already exists", info.Message)
}

func TestParseError_ForeignKeyViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23503", Constraint: "fk_furniture_items_category"}

	info := ParseError(pqErr, "item create")
	assert.Equal(t, CatalogCategoryNotFound, info.Code)
}

func TestParseError_NotNullViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23502", Column: "name"}

	info := ParseError(pqErr, "item create")
	assert.Equal(t, ValidationRequired, info.Code)
}

func TestParseError_ConnectionFailure(t *testing.T) {
	info := ParseError(errors.New("dial tcp 127.0.0.1:5432: connection refused"), "item list")
	assert.Equal(t, InternalDatabaseError, info.Code)
}

func TestParseError_Fallthrough(t *testing.T) {
	info := ParseError(errors.New("boom"), "item update")
	assert.Equal(t, InternalServerError, info.Code)
	assert.Equal(t, "Updating failed. Please try again shortly", info.Message)
}
