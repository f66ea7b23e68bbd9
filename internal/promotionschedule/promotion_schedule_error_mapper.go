package promotionschedule

import (
	"errors"
	"net/http"

	employeeerrors "go-hrdash/internal/employee/errors"
	promotionscheduleerrors "go-hrdash/internal/promotionschedule/errors"
	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/dberror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return promotionscheduleerrors.ErrScheduleNotFound
	}
	if dberror.IsForeignKeyViolation(err) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if dberror.IsNumericOverflow(err) {
		return apperror.New(apperror.CodeInvalidInput, "Salary is out of range", http.StatusBadRequest)
	}

	return err
}
