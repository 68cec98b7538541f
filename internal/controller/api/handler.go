package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/calendar"
	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/Freeeeeet/tutor_sessions/internal/service"
	"github.com/Freeeeeet/tutor_sessions/internal/timezone"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionAPI операции сервиса занятий, доступные по HTTP
type SessionAPI interface {
	CreateSessions(ctx context.Context, in service.CreateSessionsInput) (model.SubmissionResult, error)
	PreviewSessions(ctx context.Context, in service.CreateSessionsInput) (*service.Preview, error)
	GetAvailability(ctx context.Context, tutorID int64) ([]*model.AvailabilitySlot, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) ([]*model.ClassSession, error)
}

// UserAPI операции с профилем пользователя
type UserAPI interface {
	SetTimezone(ctx context.Context, id int64, tz string) (*model.User, error)
}

type Handler struct {
	sessions SessionAPI
	users    UserAPI
	logger   *zap.Logger
	now      func() time.Time
}

func NewHandler(sessions SessionAPI, users UserAPI, logger *zap.Logger) *Handler {
	registerValidators()
	return &Handler{
		sessions: sessions,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// pathID читает числовой параметр пути; при ошибке отвечает 400
func (h *Handler) pathID(c *gin.Context, param, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(c, fmt.Errorf("%w: %s id must be a positive integer", model.ErrInvalidInput, name))
		return 0, false
	}
	return id, true
}

func (h *Handler) tutorID(c *gin.Context) (int64, bool) {
	return h.pathID(c, "tutorID", "tutor")
}

// bindCreate разбирает тело запроса создания/предпросмотра
func (h *Handler) bindCreate(c *gin.Context) (service.CreateSessionsInput, bool) {
	tutorID, ok := h.tutorID(c)
	if !ok {
		return service.CreateSessionsInput{}, false
	}

	var req createSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %s", model.ErrInvalidInput, bindingMessage(err)))
		return service.CreateSessionsInput{}, false
	}
	return req.toInput(tutorID), true
}

// CreateSessions POST /api/tutors/:tutorID/sessions
func (h *Handler) CreateSessions(c *gin.Context) {
	in, ok := h.bindCreate(c)
	if !ok {
		return
	}

	result, err := h.sessions.CreateSessions(c.Request.Context(), in)
	if err != nil {
		h.logger.Info("Session creation rejected",
			zap.Int64("tutor_id", in.TutorID),
			zap.Int("created", result.CreatedCount),
			zap.Int("total", result.TotalCount),
			zap.Error(err))
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submissionResponse{
		CreatedCount: result.CreatedCount,
		TotalCount:   result.TotalCount,
		GroupID:      result.GroupID,
		SessionIDs:   result.SessionIDs,
		Timezone:     result.Timezone,
	})
}

// PreviewSessions POST /api/tutors/:tutorID/sessions/preview
func (h *Handler) PreviewSessions(c *gin.Context) {
	in, ok := h.bindCreate(c)
	if !ok {
		return
	}

	preview, err := h.sessions.PreviewSessions(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newPreviewResponse(preview))
}

// GetAvailability GET /api/tutors/:tutorID/availability?timezone=
func (h *Handler) GetAvailability(c *gin.Context) {
	tutorID, ok := h.tutorID(c)
	if !ok {
		return
	}

	loc := time.UTC
	if name := c.Query("timezone"); name != "" {
		var err error
		if loc, err = timezone.LoadZone(name); err != nil {
			h.writeError(c, err)
			return
		}
	}

	slots, err := h.sessions.GetAvailability(c.Request.Context(), tutorID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, newSlotResponse(s, loc))
	}
	c.JSON(http.StatusOK, gin.H{"timezone": loc.String(), "slots": out})
}

// ExportGroup GET /api/sessions/groups/:groupID/calendar.ics
func (h *Handler) ExportGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupID"))
	if err != nil {
		h.writeError(c, fmt.Errorf("%w: group id must be a UUID", model.ErrInvalidInput))
		return
	}

	sessions, err := h.sessions.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, sessions, h.now()); err != nil {
		h.writeError(c, fmt.Errorf("encode calendar: %w", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, groupID))
	c.Data(http.StatusOK, calendar.ContentType, buf.Bytes())
}

// SetTimezone PUT /api/users/:userID/timezone
func (h *Handler) SetTimezone(c *gin.Context) {
	userID, ok := h.pathID(c, "userID", "user")
	if !ok {
		return
	}

	var req setTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, fmt.Errorf("%w: %s", model.ErrInvalidInput, bindingMessage(err)))
		return
	}

	user, err := h.users.SetTimezone(c.Request.Context(), userID, req.Timezone)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
