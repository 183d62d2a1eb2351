package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid_token")

// Claims é o que o token carrega sobre o usuário logado.
type Claims struct {
	UserID   uint
	TenantID uint
	Role     string
}

func Issue(secret string, c Claims, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      c.UserID,
		"tenantId": c.TenantID,
		"role":     c.Role,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func Parse(secret, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	userID, ok1 := claims["sub"].(float64)
	tenantID, ok2 := claims["tenantId"].(float64)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || tenantID == 0 {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: uint(userID), TenantID: uint(tenantID), Role: role}, nil
}
