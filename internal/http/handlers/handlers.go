package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/kiosk_checkin/backend/internal/llm"
	"github.com/kiosk_checkin/backend/internal/models"
	"github.com/kiosk_checkin/backend/internal/service"
)

type Handler struct {
	CheckIn   *service.CheckIn
	Completer llm.Completer
	Validator *validator.Validate
	Logger    zerolog.Logger

	DefaultModel       string
	DefaultTemperature float64
}

// @Summary Liveness check
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Create a CRM ticket from a kiosk check-in
// @Accept json
// @Produce json
// @Param submission body models.CheckInSubmission true "check-in submission"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /ticket [post]
func (h *Handler) CreateTicket(c *gin.Context) {
	var sub models.CheckInSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		failTicket(c, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}

	result, err := h.CheckIn.CreateTicket(c.Request.Context(), sub)
	if err != nil {
		var valErr *models.ValidationError
		var extErr *models.ExternalServiceError
		switch {
		case errors.As(err, &valErr):
			failTicket(c, http.StatusBadRequest, valErr.Message, nil)
		case errors.As(err, &extErr):
			h.Logger.Error().Str("service", extErr.Service).Int("status", extErr.Status).Msg(extErr.Message)
			failTicket(c, http.StatusBadGateway, extErr.Message, extErr.Detail)
		default:
			h.Logger.Error().Err(err).Msg("ticket pipeline failed")
			failTicket(c, http.StatusInternalServerError, "Server error", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"ticket_id":     result.TicketID,
		"ticket_number": result.TicketNumber,
		"ticket":        result.Raw,
	})
}

type CompletionRequest struct {
	Messages    []models.ChatMessage `json:"messages" validate:"required,min=1"`
	Temperature *float64             `json:"temperature"`
	Model       string               `json:"model"`
}

// @Summary Proxy a chat completion, keeping the provider key server-side
// @Accept json
// @Produce json
// @Param request body CompletionRequest true "message sequence with optional model and temperature"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /llm [post]
func (h *Handler) Completion(c *gin.Context) {
	var req CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failLLM(c, http.StatusBadRequest, "messages[] is required", nil)
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		failLLM(c, http.StatusBadRequest, "messages[] is required", nil)
		return
	}

	model := req.Model
	if model == "" {
		model = h.DefaultModel
	}
	temperature := h.DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	content, err := h.Completer.Complete(c.Request.Context(), req.Messages, model, temperature)
	if err != nil {
		var valErr *models.ValidationError
		var cfgErr *models.ConfigurationError
		var extErr *models.ExternalServiceError
		switch {
		case errors.As(err, &valErr):
			failLLM(c, http.StatusBadRequest, valErr.Message, nil)
		case errors.As(err, &cfgErr):
			h.Logger.Error().Msg(cfgErr.Message)
			failLLM(c, http.StatusInternalServerError, cfgErr.Message, nil)
		case errors.As(err, &extErr):
			h.Logger.Error().Str("service", extErr.Service).Int("status", extErr.Status).Msg(extErr.Message)
			failLLM(c, http.StatusBadGateway, extErr.Message, extErr.Detail)
		default:
			h.Logger.Error().Err(err).Msg("completion proxy failed")
			failLLM(c, http.StatusInternalServerError, "Server error", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "content": content})
}

// failTicket writes the check-in error envelope: {ok:false, error, detail?}.
func failTicket(c *gin.Context, status int, msg string, detail any) {
	body := gin.H{"ok": false, "error": msg}
	if detail != nil {
		body["detail"] = detail
	}
	c.JSON(status, body)
}

// failLLM writes the completion-proxy error envelope: {error, detail?}.
func failLLM(c *gin.Context, status int, msg string, detail any) {
	body := gin.H{"error": msg}
	if detail != nil {
		body["detail"] = detail
	}
	c.JSON(status, body)
}
