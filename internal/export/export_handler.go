package export

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"go-hrdash/internal/employee"
	"go-hrdash/internal/middleware"
	"go-hrdash/internal/promotionschedule"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EmployeeLister interface {
	GetAll(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type ScheduleLister interface {
	ListAll(ctx context.Context) ([]promotionschedule.PromotionScheduleResponse, error)
}

type Handler struct {
	employees EmployeeLister
	schedules ScheduleLister
	now       func() time.Time
	logger    *zap.Logger
}

func NewHandler(employees EmployeeLister, schedules ScheduleLister, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("export.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.handler")
	}
	return &Handler{employees: employees, schedules: schedules, now: time.Now, logger: l}
}

func RegisterRoutes(api *gin.RouterGroup, handler *Handler) {
	exports := api.Group("/exports", middleware.RateLimitByClient(1, 5))
	exports.GET("/employees.xlsx", handler.Employees)
	exports.GET("/promotion-schedules.xlsx", handler.PromotionSchedules)
}

func (h *Handler) Employees(c *gin.Context) {
	rows, err := h.employees.GetAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := Employees(&buf, rows); err != nil {
		h.writeError(c, err)
		return
	}
	h.attach(c, "employees.xlsx", buf.Bytes(), len(rows))
}

func (h *Handler) PromotionSchedules(c *gin.Context) {
	rows, err := h.schedules.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := PromotionSchedules(&buf, rows, h.now()); err != nil {
		h.writeError(c, err)
		return
	}
	h.attach(c, "promotion-schedules.xlsx", buf.Bytes(), len(rows))
}

func (h *Handler) attach(c *gin.Context, filename string, body []byte, rows int) {
	h.logger.Info("export generated",
		zap.String("file", filename),
		zap.Int("rows", rows),
		zap.Int("bytes", len(body)),
	)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, ContentType, body)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Error("export failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
