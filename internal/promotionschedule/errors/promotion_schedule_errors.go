package promotionscheduleerrors

import (
	"net/http"

	"go-hrdash/internal/shared/apperror"
)

var (
	ErrScheduleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Promotion schedule not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of pending, approved, completed, cancelled",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Promotion schedule status transition is not allowed",
		http.StatusConflict,
	)
)
