package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/optica/backend/internal/infrastructure/locale"
)

// FormatHandler renders currency and dates the way the store displays them
type FormatHandler struct {
	BaseHandler
	formatter *locale.Formatter
}

// NewFormatHandler creates a new FormatHandler; nil uses the default locale
func NewFormatHandler(formatter *locale.Formatter) *FormatHandler {
	if formatter == nil {
		formatter = locale.Default()
	}
	return &FormatHandler{formatter: formatter}
}

// FormatResponse pairs the input with its rendering
type FormatResponse struct {
	Value     string `json:"value" example:"1234.5"`
	Formatted string `json:"formatted" example:"R$ 1.234,50"`
}

// LocaleResponse describes the active locale
type LocaleResponse struct {
	Language string `json:"language" example:"pt-BR"`
	Symbol   string `json:"currency_symbol" example:"R$"`
	Timezone string `json:"timezone" example:"America/Sao_Paulo"`
}

// Locale godoc
// @ID           getFormatLocale
// @Summary      Show the active locale
// @Tags         format
// @Produce      json
// @Success      200 {object} APIResponse[LocaleResponse]
// @Router       /format/locale [get]
func (h *FormatHandler) Locale(c *gin.Context) {
	h.Success(c, LocaleResponse{
		Language: h.formatter.Language().String(),
		Symbol:   h.formatter.Symbol(),
		Timezone: h.formatter.Location().String(),
	})
}

// Currency godoc
// @ID           formatCurrency
// @Summary      Format a monetary amount
// @Description  Renders value with two fraction digits. Non-numeric input renders the NaN placeholder.
// @Tags         format
// @Produce      json
// @Param        value query string true "Decimal amount, dot separated"
// @Success      200 {object} APIResponse[FormatResponse]
// @Router       /format/currency [get]
func (h *FormatHandler) Currency(c *gin.Context) {
	value := c.Query("value")
	h.Success(c, FormatResponse{Value: value, Formatted: h.formatter.FormatCurrency(value)})
}

// Date godoc
// @ID           formatDate
// @Summary      Format a date as dd/mm/yyyy
// @Description  Accepts ISO-8601 text or Unix milliseconds. Unparseable input renders "Invalid Date".
// @Tags         format
// @Produce      json
// @Param        value query string true "ISO-8601 date or Unix milliseconds"
// @Success      200 {object} APIResponse[FormatResponse]
// @Router       /format/date [get]
func (h *FormatHandler) Date(c *gin.Context) {
	value := c.Query("value")
	h.Success(c, FormatResponse{Value: value, Formatted: h.formatter.FormatDate(locale.DateInput(value))})
}

// DateTime godoc
// @ID           formatDateTime
// @Summary      Format a timestamp as dd/mm/yyyy HH:MM
// @Tags         format
// @Produce      json
// @Param        value query string true "ISO-8601 timestamp or Unix milliseconds"
// @Success      200 {object} APIResponse[FormatResponse]
// @Router       /format/datetime [get]
func (h *FormatHandler) DateTime(c *gin.Context) {
	value := c.Query("value")
	h.Success(c, FormatResponse{Value: value, Formatted: h.formatter.FormatDateTime(locale.DateInput(value))})
}
