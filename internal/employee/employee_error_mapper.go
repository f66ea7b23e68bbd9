package employee

import (
	"errors"

	employeeerrors "go-hrdash/internal/employee/errors"
	"go-hrdash/internal/shared/dberror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	if dberror.IsUniqueViolation(err, "uq_employees_employee_id", "employees.employee_id") {
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	}
	if dberror.IsUniqueViolation(err, "uq_employees_email", "employees.email") {
		return employeeerrors.ErrEmployeeEmailAlreadyExists
	}

	return err
}
