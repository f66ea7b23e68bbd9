package promotionhistory

import (
	"net/http"

	employeeerrors "go-hrdash/internal/employee/errors"
	promotionhistoryerrors "go-hrdash/internal/promotionhistory/errors"
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
	if dberror.IsUniqueViolation(err, "uq_promotion_history_schedule", "promotion_history.promotion_schedule_id") {
		return promotionhistoryerrors.ErrScheduleAlreadyRecorded
	}
	if dberror.IsNumericOverflow(err) {
		return apperror.New(apperror.CodeInvalidInput, "Salary is out of range", http.StatusBadRequest)
	}

	return err
}
