package auth

import (
	"errors"
	"fmt"

	autherrors "go-ems/internal/auth/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the caller identity carried by an access token issued by the
// identity system.
type Claims struct {
	EmployeeID string
	Role       string
}

// ParseAccessToken verifies an HS256 token signed with secret and extracts
// the caller. Errors are autherrors values.
func ParseAccessToken(tokenString, secret string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, autherrors.ErrTokenNotFound
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, autherrors.ErrTokenExpired
		}
		return Claims{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, autherrors.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Claims{}, autherrors.ErrInvalidToken.Withf("Employee ID not found in token")
	}

	role, _ := claims["role"].(string)

	return Claims{EmployeeID: employeeID, Role: role}, nil
}
