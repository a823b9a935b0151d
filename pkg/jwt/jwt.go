package jwt

import (
	"pitchside/backend/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken creates a new JWT for a given user ID. Admin status travels
// in the token so venue routes can gate on it without a lookup.
func GenerateToken(userID uint, admin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"adm": admin,
		"exp": time.Now().Add(time.Hour * 24 * 7).Unix(), // Token expires in 7 days
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
