package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockTimestamps struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type mockProduct struct {
	mockTimestamps
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Ignore string `db:"-" json:"ignore"`
	NoTag  string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockProduct]()

	assert.Equal(t, []string{"created_at", "updated_at", "id", "name"}, cols)
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	cols := ExtractDBColumns[*mockProduct]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "name")
	assert.NotContains(t, cols, "-")
}
