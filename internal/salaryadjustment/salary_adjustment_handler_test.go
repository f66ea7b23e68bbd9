package salaryadjustment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-hrdash/internal/salaryadjustment"
	"go-hrdash/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	os.Exit(m.Run())
}

type fakeAdjustmentService struct {
	CreateFn         func(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error)
	ListByEmployeeFn func(ctx context.Context, employeeID int64) ([]salaryadjustment.SalaryAdjustmentResponse, error)
}

func (f *fakeAdjustmentService) Create(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeAdjustmentService) ListByEmployee(ctx context.Context, employeeID int64) ([]salaryadjustment.SalaryAdjustmentResponse, error) {
	return f.ListByEmployeeFn(ctx, employeeID)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestSalaryAdjustmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAdjustmentService{
			CreateFn: func(ctx context.Context, req salaryadjustment.CreateSalaryAdjustmentRequest) (salaryadjustment.SalaryAdjustmentResponse, error) {
				assert.Equal(t, "promotion", req.AdjustmentType)
				assert.Nil(t, req.AdjustmentPercentage)
				pct := 10.0
				return salaryadjustment.SalaryAdjustmentResponse{ID: 1, AdjustmentType: req.AdjustmentType, AdjustmentPercentage: &pct}, nil
			},
		}
		c, w := newJSONContext(http.MethodPost, "/api/v1/rpc/createSalaryAdjustment",
			`{"employee_id":4,"previous_salary":100000,"new_salary":"110000","adjustment_type":"promotion","effective_date":"2026-01-01"}`)

		salaryadjustment.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"adjustment_percentage":10`)
	})

	t.Run("unknown adjustment type", func(t *testing.T) {
		c, w := newJSONContext(http.MethodPost, "/api/v1/rpc/createSalaryAdjustment",
			`{"employee_id":4,"previous_salary":100000,"new_salary":110000,"adjustment_type":"bonus","effective_date":"2026-01-01"}`)

		salaryadjustment.NewHandler(&fakeAdjustmentService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})
}

func TestSalaryAdjustmentHandler_ListByEmployee(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAdjustmentService{
			ListByEmployeeFn: func(ctx context.Context, employeeID int64) ([]salaryadjustment.SalaryAdjustmentResponse, error) {
				assert.Equal(t, int64(4), employeeID)
				return []salaryadjustment.SalaryAdjustmentResponse{{ID: 1, EmployeeID: 4}}, nil
			},
		}
		c, w := newJSONContext(http.MethodGet, "/api/v1/rpc/getSalaryAdjustmentsByEmployee?employee_id=4", "")

		salaryadjustment.NewHandler(svc).ListByEmployee(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_id":4`)
	})

	t.Run("non numeric employee_id", func(t *testing.T) {
		c, w := newJSONContext(http.MethodGet, "/api/v1/rpc/getSalaryAdjustmentsByEmployee?employee_id=abc", "")

		salaryadjustment.NewHandler(&fakeAdjustmentService{}).ListByEmployee(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
