package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferropos/internal/domain/audit"
	"ferropos/internal/infrastructure/http/v1/middleware"
)

type auditReaderStub struct {
	entries    []audit.Entry
	entityType string
	entityID   int64
	limit      int
}

func (r *auditReaderStub) EntityHistory(_ context.Context, entityType string, entityID int64, limit int) ([]audit.Entry, error) {
	r.entityType = entityType
	r.entityID = entityID
	r.limit = limit
	return r.entries, nil
}

func newProductAuditRouter(reader audit.Reader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	handler := NewProductHandler(NewBaseHandler(), nil, reader)
	router.GET("/products/:id/audit", handler.AuditHistory)
	return router
}

func TestProductAuditHistory(t *testing.T) {
	reader := &auditReaderStub{entries: []audit.Entry{
		{
			ID:        2,
			Action:    audit.ActionStockAdjust,
			UserID:    1,
			Changes:   json.RawMessage(`{"quantity":{"old":10,"new":25}}`),
			CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        1,
			Action:    audit.ActionCreate,
			UserID:    1,
			Changes:   json.RawMessage(`{"name":"Hammer"}`),
			CreatedAt: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC),
		},
	}}
	router := newProductAuditRouter(reader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/7/audit", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "product", reader.entityType)
	assert.Equal(t, int64(7), reader.entityID)
	assert.Equal(t, 50, reader.limit)

	var got []audit.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, audit.ActionStockAdjust, got[0].Action)
	assert.Equal(t, audit.ActionCreate, got[1].Action)
}

func TestProductAuditHistory_CustomLimit(t *testing.T) {
	reader := &auditReaderStub{}
	router := newProductAuditRouter(reader)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/7/audit?limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, reader.limit)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProductAuditHistory_BadID(t *testing.T) {
	router := newProductAuditRouter(&auditReaderStub{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/abc/audit", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
