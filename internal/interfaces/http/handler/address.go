package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	partnerapp "github.com/optica/backend/internal/application/partner"
	"github.com/optica/backend/internal/infrastructure/logger"
	"github.com/optica/backend/internal/infrastructure/postalcode"
	"github.com/optica/backend/internal/interfaces/http/dto"
)

// PostalCodeResolver reports the three-state outcome of a postal code lookup
type PostalCodeResolver interface {
	Resolve(ctx context.Context, code string) postalcode.Result
}

// AddressHandler resolves postal codes for address auto-completion
type AddressHandler struct {
	BaseHandler
	resolver PostalCodeResolver
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(resolver PostalCodeResolver) *AddressHandler {
	return &AddressHandler{resolver: resolver}
}

// LookupPostalCode godoc
// @ID           lookupPostalCode
// @Summary      Resolve a postal code
// @Description  Returns the address for a CEP. Unknown and malformed codes answer 404; an unreachable lookup service answers 502.
// @Tags         addresses
// @Produce      json
// @Param        code path string true "CEP, masked or digits only" example(01001-000)
// @Success      200 {object} APIResponse[partnerapp.AddressResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /addresses/cep/{code} [get]
func (h *AddressHandler) LookupPostalCode(c *gin.Context) {
	code := c.Param("code")
	result := h.resolver.Resolve(c.Request.Context(), code)

	switch result.Status {
	case postalcode.StatusFound:
		h.Success(c, partnerapp.ToAddressResponse(*result.Address))
	case postalcode.StatusNotFound:
		msg := "Postal code not found"
		if errors.Is(result.Err, postalcode.ErrInvalidCode) {
			msg = "Postal code must have 8 digits"
		}
		h.ErrorWithCode(c, dto.ErrCodeNotFound, msg)
	default:
		logger.FromContext(c.Request.Context()).Warn("postal code lookup unavailable",
			zap.String("code", code),
			zap.Error(result.Err),
		)
		h.ErrorWithCode(c, dto.ErrCodeUpstreamUnavailable, "Postal code service is unavailable, fill the address manually")
	}
}
