package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/decent-cloud/backend/internal/auth"
	"github.com/decent-cloud/backend/internal/logger"
)

const AuthedUserKey = "authedUser"

// authErrorStatus maps auth.ErrorKind to the spec's error-kind -> HTTP
// status mapping (§7): all eight auth.ErrorKind values are request
// problems, so they map to Unauthenticated (401) uniformly — the kind
// string itself (returned in the error body) carries the detail.
func authErrorStatus(kind auth.ErrorKind) int {
	return http.StatusUnauthorized
}

// SignatureAuthMiddleware verifies the four auth headers against the
// canonical message (spec §4.A) and stores the resolved AuthedUser in the
// Gin context for handlers to read via GetAuthedUser.
func SignatureAuthMiddleware(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		sr, err := auth.ExtractSignedRequest(c.Request)
		if err != nil {
			respondAuthError(c, err)
			return
		}

		user, err := verifier.Verify(c.Request.Context(), sr)
		if err != nil {
			respondAuthError(c, err)
			return
		}

		c.Set(AuthedUserKey, user)
		c.Next()
	}
}

func respondAuthError(c *gin.Context, err error) {
	ve, ok := auth.AsVerifyError(err)
	kind := auth.ErrBadSignature
	if ok {
		kind = ve.Kind
	}

	if logger.Log != nil {
		logger.Log.Warn("signature verification failed",
			zap.String("kind", string(kind)),
			zap.String("path", c.Request.URL.Path),
		)
	}

	c.AbortWithStatusJSON(authErrorStatus(kind), gin.H{
		"success": false,
		"error": gin.H{
			"kind":    string(kind),
			"message": err.Error(),
		},
	})
}

// GetAuthedUser reads the AuthedUser stored by SignatureAuthMiddleware.
func GetAuthedUser(c *gin.Context) (auth.AuthedUser, bool) {
	v, exists := c.Get(AuthedUserKey)
	if !exists {
		return auth.AuthedUser{}, false
	}
	user, ok := v.(auth.AuthedUser)
	return user, ok
}
