package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica/backend/internal/interfaces/http/dto"
)

func TestMaskHandler_Apply(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		value    string
		masked   string
		unmasked string
		complete bool
	}{
		{"full cpf", "cpf", "12345678901", "123.456.789-01", "12345678901", true},
		{"partial cpf", "cpf", "1234", "123.4", "1234", false},
		{"mobile phone", "phone", "11987654321", "(11) 98765-4321", "11987654321", true},
		{"landline phone", "phone", "1133334444", "(11) 3333-4444", "1133334444", true},
		{"cep truncates", "cep", "1234567890", "12345-678", "12345678", true},
		{"alias", "postal-code", "01001000", "01001-000", "01001000", true},
		{"empty value", "cpf", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMaskHandler()
			c, w := newTestContext(http.MethodGet, "/masks/"+tt.kind)
			c.Params = gin.Params{{Key: "kind", Value: tt.kind}}
			q := c.Request.URL.Query()
			q.Set("value", tt.value)
			c.Request.URL.RawQuery = q.Encode()

			h.Apply(c)

			require.Equal(t, http.StatusOK, w.Code)
			resp := decodeResponse(t, w)
			data := resp.Data.(map[string]any)
			assert.Equal(t, tt.masked, data["masked"])
			assert.Equal(t, tt.unmasked, data["unmasked"])
			assert.Equal(t, tt.complete, data["complete"])
		})
	}
}

func TestMaskHandler_ApplyUnknownKind(t *testing.T) {
	h := NewMaskHandler()
	c, w := newTestContext(http.MethodGet, "/masks/cnpj?value=1")
	c.Params = gin.Params{{Key: "kind", Value: "cnpj"}}

	h.Apply(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestMaskHandler_ListKinds(t *testing.T) {
	h := NewMaskHandler()
	c, w := newTestContext(http.MethodGet, "/masks")

	h.ListKinds(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	kinds := resp.Data.([]any)
	require.Len(t, kinds, 3)

	first := kinds[0].(map[string]any)
	assert.Equal(t, "cpf", first["kind"])
	assert.Equal(t, "###.###.###-##", first["placeholder"])
	assert.Equal(t, float64(11), first["max_digits"])
}
