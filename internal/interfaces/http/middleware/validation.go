package middleware

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/optica/backend/internal/domain/shared/mask"
	"github.com/optica/backend/internal/domain/shared/valueobject"
	"github.com/optica/backend/internal/interfaces/http/dto"
)

// Custom validation tags
const (
	TagCPF     = "cpf"
	TagCEP     = "cep"
	TagPhoneBR = "phone_br"
)

// SetupValidator configures the gin validator with JSON field names and the
// Brazilian document tags. Safe to call more than once.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

// RegisterValidations installs the field name function and custom tags on v
func RegisterValidations(v *validator.Validate) {
	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation(TagCPF, validateCPF)
	_ = v.RegisterValidation(TagCEP, maskValidator(mask.KindPostalCode))
	_ = v.RegisterValidation(TagPhoneBR, maskValidator(mask.KindPhone))
}

// validateCPF accepts masked or bare CPFs with valid check digits
func validateCPF(fl validator.FieldLevel) bool {
	return valueobject.IsValidCPF(fl.Field().String())
}

// maskValidator accepts complete values written either as bare digits or in
// the mask's own layout. Empty values pass so the tag combines with required.
func maskValidator(kind mask.Kind) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		if mask.Format(kind, s) != s && mask.Unmask(s) != s {
			return false
		}
		return mask.IsComplete(kind, s)
	}
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse(
		"Request validation failed",
		requestID,
		details,
	)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case TagCPF:
		return "Invalid CPF"
	case TagCEP:
		return "CEP must have 8 digits (#####-###)"
	case TagPhoneBR:
		return "Phone must have 10 or 11 digits including the area code"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "datetime":
		return "Must match the layout " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
