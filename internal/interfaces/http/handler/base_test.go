package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/interfaces/http/dto"
	"github.com/optica/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeAs[T any](t *testing.T, w *httptest.ResponseRecorder) APIResponse[T] {
	t.Helper()
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.Success(c, map[string]string{"masked": "123.456.789-01"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodGet, "/")

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreatedAndNoContent(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodPost, "/")
	h.Created(c, gin.H{"id": "x"})
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext(http.MethodDelete, "/")
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	tests := []struct {
		name   string
		call   func(h *BaseHandler, c *gin.Context)
		status int
		code   string
	}{
		{"bad request", func(h *BaseHandler, c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"not found", func(h *BaseHandler, c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"internal", func(h *BaseHandler, c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"code derived status", func(h *BaseHandler, c *gin.Context) {
			h.ErrorWithCode(c, dto.ErrCodeUpstreamUnavailable, "down")
		}, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable},
		{"legacy code derived status", func(h *BaseHandler, c *gin.Context) {
			h.ErrorWithCode(c, "ALREADY_EXISTS", "dup")
		}, http.StatusConflict, dto.ErrCodeAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/")
			c.Set(middleware.RequestIDKey, "req-1")

			tt.call(h, c)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerValidationError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodPost, "/")

	h.ValidationError(c, []dto.ValidationDetail{{Field: "tax_id", Message: "Invalid CPF"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}

func TestBaseHandlerBindError(t *testing.T) {
	type body struct {
		TaxID string `json:"tax_id" binding:"required,cpf"`
	}

	t.Run("validation failure lists fields", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, "/")
		c.Request = httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"tax_id":"111.111.111-11"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		var b body
		err := c.ShouldBindJSON(&b)
		require.Error(t, err)
		h.BindError(c, err)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "tax_id", resp.Error.Details[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodPost, "/")
		c.Request = httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"tax_id":`))
		c.Request.Header.Set("Content-Type", "application/json")

		var b body
		h.BindError(c, c.ShouldBindJSON(&b))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
		{"already exists", shared.NewDomainError("ALREADY_EXISTS", "dup"), http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"invalid tax id", shared.NewDomainError("INVALID_TAX_ID", "bad cpf"), http.StatusBadRequest, dto.ErrCodeValidation},
		{"already inactive", shared.NewDomainError("ALREADY_INACTIVE", "inactive"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState},
		{"concurrent modification", shared.ErrConcurrentModification, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"upstream", shared.ErrUnavailable, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable},
		{"wrapped", fmt.Errorf("load customer: %w", shared.ErrNotFound), http.StatusNotFound, dto.ErrCodeNotFound},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "/")
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})

	t.Run("plain error message is not leaked", func(t *testing.T) {
		h := &BaseHandler{}
		c, w := newTestContext(http.MethodGet, "/")
		h.HandleError(c, errors.New("pq: password authentication failed"))
		assert.NotContains(t, w.Body.String(), "password")
		assert.Len(t, c.Errors, 1)
	})
}

func TestBaseHandlerParseID(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext(http.MethodGet, "/customers/nope")
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	_, ok := h.parseID(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, _ = newTestContext(http.MethodGet, "/")
	c.Params = gin.Params{{Key: "id", Value: "6f1c1a3e-3b7a-4f7e-9a4c-1f0a6d2b9c11"}}
	id, ok := h.parseID(c)
	assert.True(t, ok)
	assert.Equal(t, "6f1c1a3e-3b7a-4f7e-9a4c-1f0a6d2b9c11", id.String())
}
