package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"carwash-tracker/internal/delivery/dto"
	"carwash-tracker/internal/usecase"
	"carwash-tracker/pkg/response"
	"carwash-tracker/pkg/validator"
)

type WebhookHandler struct {
	webhookUsecase usecase.WebhookUsecase
	validator      *validator.CustomValidator
}

func NewWebhookHandler(webhookUsecase usecase.WebhookUsecase, validator *validator.CustomValidator) *WebhookHandler {
	return &WebhookHandler{
		webhookUsecase: webhookUsecase,
		validator:      validator,
	}
}

func (h *WebhookHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var event dto.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&event); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.webhookUsecase.ProcessEvent(r.Context(), &event)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange):
			response.Error(w, http.StatusBadRequest, "Finish time must not be before scheduled time", nil)
		default:
			response.InternalServerError(w, "Failed to process webhook event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Webhook event processed", result)
}
