package middleware

import (
	"net/http"

	"rosa/utils"

	"github.com/gin-gonic/gin"
)

// ComandaVerifier validates guest comanda tokens.
type ComandaVerifier interface {
	Verify(token string) (*utils.ComandaClaims, error)
}

// ComandaMiddleware reads the guest's comanda from the bearer header. When
// required is false a missing token is allowed, but a present and invalid
// one is still rejected.
func ComandaMiddleware(verifier ComandaVerifier, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			if required {
				utils.JSONError(c, http.StatusUnauthorized, "comanda_required", "A valid comanda is required")
				return
			}
			c.Next()
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid_comanda", "Invalid or expired comanda")
			return
		}

		c.Set(ComandaIDKey, claims.Subject)
		c.Set(CabinKey, claims.CabinName)
		c.Set(GuestKey, claims.GuestName)
		c.Next()
	}
}
