package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optica/backend/internal/interfaces/http/dto"
)

type registration struct {
	TaxID      string `json:"tax_id" binding:"required,cpf"`
	Phone      string `json:"phone" binding:"omitempty,phone_br"`
	PostalCode string `json:"postal_code" binding:"omitempty,cep"`
	Email      string `json:"email" binding:"omitempty,email"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()
	SetupValidator() // idempotent

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NoError(t, v.Var("529.982.247-25", TagCPF))
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	RegisterValidations(v)

	tests := []struct {
		name  string
		value string
		tag   string
		valid bool
	}{
		{"cpf bare", "52998224725", TagCPF, true},
		{"cpf masked", "529.982.247-25", TagCPF, true},
		{"cpf bad check digit", "52998224724", TagCPF, false},
		{"cpf repeated digits", "111.111.111-11", TagCPF, false},
		{"cep bare", "01001000", TagCEP, true},
		{"cep masked", "01001-000", TagCEP, true},
		{"cep short", "0100100", TagCEP, false},
		{"cep odd layout", "010.01-000", TagCEP, false},
		{"cep empty", "", TagCEP, true},
		{"mobile", "(11) 98765-4321", TagPhoneBR, true},
		{"landline bare", "1133334444", TagPhoneBR, true},
		{"phone short", "119876543", TagPhoneBR, false},
		{"phone odd layout", "11 98765 4321", TagPhoneBR, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.value, tt.tag)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/customers", func(c *gin.Context) {
		var req registration
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("reports every rejected field by json name", func(t *testing.T) {
		body := strings.NewReader(`{"tax_id":"123.456.789-00","phone":"1234","postal_code":"01001-000","email":"nope"}`)
		req := httptest.NewRequest(http.MethodPost, "/customers", body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-42", resp.Error.RequestID)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid CPF", fields["tax_id"])
		assert.Contains(t, fields["phone"], "10 or 11 digits")
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.NotContains(t, fields, "postal_code")
	})

	t.Run("accepts valid input", func(t *testing.T) {
		body := strings.NewReader(`{"tax_id":"529.982.247-25","phone":"(11) 98765-4321"}`)
		req := httptest.NewRequest(http.MethodPost, "/customers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed JSON has no details", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), `"details"`)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type form struct {
		Name   string `validate:"required"`
		Short  string `validate:"min=5"`
		Status string `validate:"oneof=active inactive"`
		State  string `validate:"len=2"`
	}

	v := validator.New()
	err := v.Struct(form{Short: "ab", Status: "gone", State: "SAO"})
	require.Error(t, err)

	messages := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		messages[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, "This field is required", messages["Name"])
	assert.Equal(t, "Must be at least 5 characters", messages["Short"])
	assert.Equal(t, "Must be one of: active inactive", messages["Status"])
	assert.Equal(t, "Must be exactly 2 characters", messages["State"])
}
