package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-hrdash/internal/shared/apperror"
	"go-hrdash/internal/shared/contextutil"
	"go-hrdash/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	errTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	errInvalidToken  = apperror.New(apperror.CodeUnauthorized, "Invalid token", http.StatusUnauthorized)
	errTokenExpired  = apperror.New(apperror.CodeUnauthorized, "Token has expired", http.StatusUnauthorized)
)

// AuthMiddleware validates an HS256 bearer token (header or access_token
// cookie) signed with secret. An empty secret disables authentication.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, errTokenNotFound)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, errTokenExpired)
				return
			}
			abortWith(c, errInvalidToken)
			return
		}

		subject, _ := claims.GetSubject()
		if subject == "" {
			subject, _ = claims["user_id"].(string)
		}
		if subject == "" {
			abortWith(c, errInvalidToken.WithDetails("subject claim missing"))
			return
		}

		role, _ := claims["role"].(string)
		c.Set(userIDKey, subject)
		c.Set(roleKey, role)

		actor := contextutil.Actor{UserID: subject, Role: role}
		ctx := contextutil.WithActor(c.Request.Context(), actor)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", subject),
			zap.String("role", role),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortWith(c *gin.Context, appErr *apperror.AppError) {
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, appErr.Details)
	c.Abort()
}
