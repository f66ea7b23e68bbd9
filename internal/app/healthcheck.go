package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

var errDatabaseUnavailable = apperror.New(apperror.CodeServiceUnavailable, "Database unavailable", http.StatusServiceUnavailable)

func healthcheck(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			zap.L().Named("app.healthcheck").Error("database ping failed", zap.Error(err))
			response.Error(c, errDatabaseUnavailable.HTTPStatus, errDatabaseUnavailable.Code, errDatabaseUnavailable.Message, nil)
			return
		}

		response.Success(c, http.StatusOK, healthResponse{
			Status:    "ok",
			Database:  "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}, nil)
	}
}
