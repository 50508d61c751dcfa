package middleware

import (
	"context"
	"net/http"

	"rosa/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middlewares.
const (
	AdminUIDKey  = "adminUID"
	IsAdminKey   = "isAdmin"
	CabinKey     = "comandaCabin"
	GuestKey     = "comandaGuest"
	ComandaIDKey = "comandaID"
)

// TokenVerifier checks Firebase ID tokens; *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AdminAuthMiddleware admits staff whose Firebase ID token carries a true
// custom claim named claim.
func AdminAuthMiddleware(verifier TokenVerifier, claim string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			zap.L().Debug("Rejected admin token", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		if isAdmin, _ := token.Claims[claim].(bool); !isAdmin {
			zap.L().Warn("Non-admin user tried an admin route", zap.String("uid", token.UID), zap.String("path", c.FullPath()))
			utils.JSONError(c, http.StatusForbidden, "forbidden", "Unauthorized admin access")
			return
		}

		c.Set(AdminUIDKey, token.UID)
		c.Set(IsAdminKey, true)
		c.Next()
	}
}
