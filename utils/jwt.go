package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ComandaClaims are the claims carried by a comanda token. The subject is
// the comanda id.
type ComandaClaims struct {
	CabinName string `json:"cabin"`
	GuestName string `json:"guest,omitempty"`
	jwt.StandardClaims
}

// GenerateToken creates a signed HS256 comanda token valid until expiresAt.
func GenerateToken(secret []byte, comandaID, cabinName, guestName string, issuedAt, expiresAt time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("comanda secret is not configured")
	}
	claims := ComandaClaims{
		CabinName: cabinName,
		GuestName: guestName,
		StandardClaims: jwt.StandardClaims{
			Id:        comandaID,
			Subject:   comandaID,
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses a comanda token and returns its claims if the
// signature and expiry are valid.
func ValidateToken(secret []byte, tokenString string) (*ComandaClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("comanda secret is not configured")
	}
	claims := &ComandaClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.CabinName == "" {
		return nil, errors.New("token does not carry a cabin")
	}
	return claims, nil
}
