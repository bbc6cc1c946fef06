package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distingue el token de acceso del de refresco; uno no sirve en lugar del otro.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// ErrWrongType el token es válido pero no del tipo esperado.
var ErrWrongType = errors.New("jwt: tipo de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y Provider permiten autorizar sin consultar la DB en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	CompanyID string    `json:"company_id,omitempty"`
	Role      string    `json:"role"`
	Provider  bool      `json:"provider,omitempty"`
	Type      TokenType `json:"type"`
}

// Subject datos del usuario que viajan en el token.
type Subject struct {
	UserID    string
	CompanyID string
	Role      string
	Provider  bool
}

// Generate firma un token HS256 del tipo indicado con vigencia ttl.
func Generate(secret, issuer string, sub Subject, typ TokenType, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    sub.UserID,
		CompanyID: sub.CompanyID,
		Role:      sub.Role,
		Provider:  sub.Provider,
		Type:      typ,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y tipo del token y devuelve sus claims.
func Parse(secret, tokenString string, typ TokenType) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Type != typ {
		return nil, ErrWrongType
	}
	return claims, nil
}
