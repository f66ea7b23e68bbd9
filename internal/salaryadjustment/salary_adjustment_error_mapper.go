package salaryadjustment

import (
	"net/http"

	employeeerrors "go-hrdash/internal/employee/errors"
	salaryadjustmenterrors "go-hrdash/internal/salaryadjustment/errors"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/dberror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if dberror.IsForeignKeyViolation(err) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if dberror.IsUniqueViolation(err, "uq_salary_adjustments_schedule", "salary_adjustments.promotion_schedule_id") {
		return salaryadjustmenterrors.ErrScheduleAlreadyRecorded
	}
	if dberror.IsNumericOverflow(err) {
		return apperror.New(apperror.CodeInvalidInput, "Salary or percentage is out of range", http.StatusBadRequest)
	}

	return err
}
