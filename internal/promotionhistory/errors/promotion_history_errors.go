package promotionhistoryerrors

import (
	"net/http"

	"go-hrdash/internal/shared/apperror"
)

var (
	ErrScheduleAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"A promotion history entry already exists for this promotion schedule",
		http.StatusConflict,
	)
)
