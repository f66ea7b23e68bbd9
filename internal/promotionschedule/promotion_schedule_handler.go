package promotionschedule

import (
	"net/http"

	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("promotionschedule.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("promotionschedule.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("promotion schedule request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePromotionScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("rpc createPromotionSchedule validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.logger.Debug("rpc createPromotionSchedule", zap.Int64("employee_id", req.EmployeeID))

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePromotionScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("rpc updatePromotionSchedule validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.logger.Debug("rpc updatePromotionSchedule", zap.Int64("promotion_schedule_id", req.ID))

	resp, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListAll(c *gin.Context) {
	h.logger.Debug("rpc getAllPromotionSchedules")

	resp, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ListUpcoming serves getUpcomingPromotions; days_ahead defaults to 30.
func (h *Handler) ListUpcoming(c *gin.Context) {
	var query ListUpcomingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("rpc getUpcomingPromotions validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.logger.Debug("rpc getUpcomingPromotions", zap.Int("days_ahead", query.DaysAhead))

	resp, err := h.service.ListUpcoming(c.Request.Context(), query.DaysAhead)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
