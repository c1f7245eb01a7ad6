// Package auth validates the JWTs issued at sign-in and exposes the role
// constants used by the route guards.
package auth

import (
	"crypto/rsa"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Roles, highest privilege first. OWNER and CO run the business, MANAGER
// schedules, SUPERVISOR leads a shift, ACCOUNTANT reads payroll.
const (
	RoleOwner      = "OWNER"
	RoleCo         = "CO"
	RoleManager    = "MANAGER"
	RoleSupervisor = "SUPERVISOR"
	RoleEmployee   = "EMPLOYEE"
	RoleAccountant = "ACCOUNTANT"
)

// ValidRole reports whether role is one of the known role constants.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleCo, RoleManager, RoleSupervisor, RoleEmployee, RoleAccountant:
		return true
	}
	return false
}

type ctxKey int

// Key is used to store/retrieve Claims in a context.Context.
const Key ctxKey = 1

type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
}

// Authorized reports whether the claims carry one of the given roles.
// OWNER passes every role check.
func (c Claims) Authorized(roles ...string) bool {
	if c.Role == RoleOwner {
		return true
	}
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

type Auth struct {
	privateKey *rsa.PrivateKey
}

// New reads an RSA private key in PEM format. The same key signs and
// verifies; only this service ever touches tokens.
func New(privateKeyFile string) (*Auth, error) {
	keyData, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return &Auth{privateKey: privateKey}, nil
}

// ValidateToken parses and verifies a signed token string.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &a.privateKey.PublicKey, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}

	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
