package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/stocklot-app/stocklot-backend/pkg/errors"
	"github.com/stocklot-app/stocklot-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success    bool             `json:"success"`
	Data       json.RawMessage  `json:"data"`
	Message    string           `json:"message"`
	Error      string           `json:"error"`
	Pagination *pagination.Meta `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Widget"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"name":"Widget"}`, string(env.Data))
	assert.Empty(t, env.Message)
	assert.Nil(t, env.Pagination)
}

func TestWriteSuccessMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccessMessage(rec, 201, nil, "product created")

	assert.Equal(t, 201, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "product created", env.Message)
}

func TestWriteList(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	meta := pagination.NewMeta(42, pagination.Params{Page: 2, Limit: 10})
	WriteList(rec, []int{1, 2, 3}, meta)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(42), env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 5, env.Pagination.Pages)
}

func TestWriteErrorClientCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        pkgerrors.New(pkgerrors.CodeValidation, "name is required"),
			wantStatus: 400,
			wantMsg:    "name is required",
		},
		{
			name:       "not found",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "product not found"),
			wantStatus: 404,
			wantMsg:    "product not found",
		},
		{
			name:       "state conflict",
			err:        pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete"),
			wantStatus: 400,
			wantMsg:    "cannot delete",
		},
		{
			name:       "idempotency",
			err:        pkgerrors.New(pkgerrors.CodeIdempotency, "operation already processed"),
			wantStatus: 409,
			wantMsg:    "operation already processed",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantMsg, env.Message)
			assert.Empty(t, env.Error, "client errors must not leak upstream text")
		})
	}
}

func TestWriteErrorInsufficientStockDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for this operation").
		WithDetails(map[string]int{"available": 2, "requested": 5})
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, 400, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.JSONEq(t, `{"available":2,"requested":5}`, string(env.Data))
}

func TestWriteErrorServerCodesHidePrivateMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	cause := fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused")
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeDependency, cause, "db: list products"))

	assert.Equal(t, 500, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "storage unavailable", env.Message)
	assert.Contains(t, env.Error, "connection refused")
}

func TestWriteErrorUntypedError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, fmt.Errorf("boom"))

	assert.Equal(t, 500, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Message)
	assert.Contains(t, env.Error, "boom")
}
