package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error        string             `json:"error"`
	Message      string             `json:"message"`
	CreatedCount *int               `json:"created_count,omitempty"`
	TotalCount   *int               `json:"total_count,omitempty"`
	RolledBack   bool               `json:"rolled_back,omitempty"`
	Conflicts    []conflictResponse `json:"conflicts,omitempty"`
}

// errorStatus возвращает HTTP-статус и код для ошибки
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, model.ErrTutorNotFound):
		return http.StatusNotFound, "tutor_not_found"
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, model.ErrGroupNotFound):
		return http.StatusNotFound, "group_not_found"
	case errors.Is(err, model.ErrNotATutor):
		return http.StatusUnprocessableEntity, "not_a_tutor"
	case errors.Is(err, model.ErrNoAvailabilityConfigured):
		return http.StatusUnprocessableEntity, "no_availability_configured"
	case errors.Is(err, model.ErrSlotConflict):
		return http.StatusConflict, "slot_conflict"
	case errors.Is(err, model.ErrSlotUnavailable):
		return http.StatusConflict, "slot_unavailable"
	case errors.Is(err, model.ErrCreationFailure):
		return http.StatusBadGateway, "creation_failure"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError отвечает клиенту по классу ошибки; внутренние ошибки не раскрываются
func (h *Handler) writeError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	resp := errorResponse{Error: code, Message: err.Error()}

	var conflict *model.ConflictError
	if errors.As(err, &conflict) {
		created := 0
		resp.Message = conflict.Message + " No sessions were created."
		resp.CreatedCount = &created
		resp.TotalCount = &conflict.Total
		resp.Conflicts = newConflicts(conflict.Violations)
	}

	var creationErr *model.CreationError
	if errors.As(err, &creationErr) {
		resp.CreatedCount = &creationErr.Created
		resp.TotalCount = &creationErr.Total
		resp.RolledBack = creationErr.RolledBack
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		resp.Message = "internal error"
	}

	c.JSON(status, resp)
}
