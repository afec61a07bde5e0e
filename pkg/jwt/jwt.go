package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired token vencido (por exp del propio token).
var ErrExpired = errors.New("jwt: token expirado")

// Claims incluye los claims estándar JWT más los campos que emite la API remota.
// Role y Ref permiten construir la identidad del cliente sin una llamada extra.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	Role       string `json:"role"`                  // "admin" | "company" | "employee" | "chef" | "delivery_person"
	Ref        string `json:"ref,omitempty"`         // referencia propia del rol (employee_id, chef_id...)
	CompanyRef string `json:"company_ref,omitempty"` // empresa a la que pertenece (company / employee)
}

// Subject datos de la identidad a firmar.
type Subject struct {
	UserID     string
	Role       string
	Ref        string
	CompanyRef string
}

// Generate genera un token JWT firmado (lo usan los dobles de la API remota en tests y herramientas locales).
func Generate(secret string, sub Subject, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     sub.UserID,
		Role:       sub.Role,
		Ref:        sub.Ref,
		CompanyRef: sub.CompanyRef,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración del token y devuelve sus claims.
// Si el token venció, el error cumple errors.Is(err, ErrExpired).
func Parse(secret, tokenString string) (*Claims, error) {
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
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// Decode lee los claims sin verificar la firma. El cliente no conoce el secreto de la API remota;
// solo necesita rol, referencias y exp para la UI. La autorización real la aplica el servidor.
func Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token malformado: %w", err)
	}
	return claims, nil
}

// Read verifica el token si hay secreto configurado; si no, lo decodifica y comprueba exp manualmente.
func Read(secret, tokenString string, now time.Time) (*Claims, error) {
	if secret != "" {
		return Parse(secret, tokenString)
	}
	claims, err := Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Expired(now) {
		return nil, ErrExpired
	}
	return claims, nil
}

// ExpiresAtTime devuelve el vencimiento del token (cero si no lo declara).
func (c *Claims) ExpiresAtTime() time.Time {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Expired informa si el token ya venció respecto a now. Sin exp nunca vence.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.ExpiresAtTime()
	return !exp.IsZero() && !now.Before(exp)
}
