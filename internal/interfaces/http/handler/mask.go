package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/optica/backend/internal/domain/shared/mask"
)

// MaskHandler exposes the input masks so web forms render exactly what the
// counter application renders
type MaskHandler struct {
	BaseHandler
}

// NewMaskHandler creates a new MaskHandler
func NewMaskHandler() *MaskHandler {
	return &MaskHandler{}
}

// MaskKindResponse describes one mask
type MaskKindResponse struct {
	Kind        mask.Kind `json:"kind" example:"cpf"`
	Label       string    `json:"label" example:"tax-id"`
	Placeholder string    `json:"placeholder" example:"###.###.###-##"`
	MinDigits   int       `json:"min_digits" example:"11"`
	MaxDigits   int       `json:"max_digits" example:"11"`
}

// MaskResponse is the result of applying a mask to a value
type MaskResponse struct {
	Kind     mask.Kind `json:"kind" example:"phone"`
	Masked   string    `json:"masked" example:"(11) 98765-4321"`
	Unmasked string    `json:"unmasked" example:"11987654321"`
	Complete bool      `json:"complete" example:"true"`
}

// ListKinds godoc
// @ID           listMaskKinds
// @Summary      List input masks
// @Tags         masks
// @Produce      json
// @Success      200 {object} APIResponse[[]MaskKindResponse]
// @Router       /masks [get]
func (h *MaskHandler) ListKinds(c *gin.Context) {
	kinds := mask.Kinds()
	out := make([]MaskKindResponse, len(kinds))
	for i, k := range kinds {
		out[i] = MaskKindResponse{
			Kind:        k,
			Label:       k.Label(),
			Placeholder: k.Placeholder(),
			MinDigits:   k.MinDigits(),
			MaxDigits:   k.MaxDigits(),
		}
	}
	h.Success(c, out)
}

// Apply godoc
// @ID           applyMask
// @Summary      Mask a value
// @Description  Formats value with the mask for kind (cpf, phone, cep). Non-digits are dropped and excess digits truncated.
// @Tags         masks
// @Produce      json
// @Param        kind  path  string true  "Mask kind" Enums(cpf, phone, cep)
// @Param        value query string false "Raw or masked input"
// @Success      200 {object} APIResponse[MaskResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /masks/{kind} [get]
func (h *MaskHandler) Apply(c *gin.Context) {
	kind, err := mask.ParseKind(c.Param("kind"))
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	masked := mask.Format(kind, c.Query("value"))
	h.Success(c, MaskResponse{
		Kind:     kind,
		Masked:   masked,
		Unmasked: mask.Unmask(masked),
		Complete: mask.IsComplete(kind, masked),
	})
}
