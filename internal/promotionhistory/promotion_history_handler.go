package promotionhistory

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
	l := zap.L().Named("promotionhistory.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("promotionhistory.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("promotion history request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePromotionHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("rpc createPromotionHistory validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.logger.Debug("rpc createPromotionHistory", zap.Int64("employee_id", req.EmployeeID))

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListByEmployee(c *gin.Context) {
	var query ListByEmployeeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("rpc getPromotionHistoryByEmployee validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ListByEmployee(c.Request.Context(), query.EmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
