package salaryadjustmenterrors

import (
	"net/http"

	"go-hrdash/internal/shared/apperror"
)

var (
	ErrScheduleAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"A salary adjustment already exists for this promotion schedule",
		http.StatusConflict,
	)
	ErrPercentageOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment_percentage must be between -999.99 and 999.99",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustmentType = apperror.New(
		apperror.CodeInvalidInput,
		"adjustment_type must be one of annual_increase, promotion, performance, other",
		http.StatusBadRequest,
	)
)
