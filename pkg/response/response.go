package response

import (
	"errors"
	"net/http"

	"anoa.com/langanalytics/pkg/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetSubject returns the email carried by the authenticated bearer token.
func GetSubject(c *gin.Context) (string, error) {
	subject := c.GetString("subject")
	if subject == "" {
		return "", apperror.ErrUnauthorized
	}
	return subject, nil
}

// ResponseError writes {"detail": ...}. Store failures are logged and their text is returned as-is.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		zap.L().Error("internal error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	message := err.Error()
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Error()
	}

	c.AbortWithStatusJSON(code, gin.H{"detail": message})
}

func Detail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": message})
}
