package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает gin-роутер со всеми маршрутами сервиса
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(recovery(logger))
	router.Use(requestLogger(logger))

	router.GET("/healthz", h.Health)

	api := router.Group("/api")
	{
		tutors := api.Group("/tutors/:tutorID")
		tutors.GET("/availability", h.GetAvailability)
		tutors.POST("/sessions", h.CreateSessions)
		tutors.POST("/sessions/preview", h.PreviewSessions)

		api.GET("/sessions/groups/:groupID/calendar.ics", h.ExportGroup)
		api.PUT("/users/:userID/timezone", h.SetTimezone)
	}

	return router
}

// recovery отвечает 500 на панику в обработчике
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Unhandled panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", rec))
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
					Error:   "internal_error",
					Message: "internal error",
				})
			}
		}()
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
