package commands

import (
	"os"
	"time"

	"workforce/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// GenToken signs an access/refresh token pair for the given claims.
func GenToken(claims auth.Claims, privateKeyFile string) (string, string, error) {
	keyData, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return "", "", errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing private key")
	}

	now := time.Now()

	accessClaims := claims
	accessClaims.IssuedAt = now.Unix()
	accessClaims.ExpiresAt = now.Add(accessTokenTTL).Unix()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := claims
	refreshClaims.IssuedAt = now.Unix()
	refreshClaims.ExpiresAt = now.Add(refreshTokenTTL).Unix()

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks a token pair. The access token may be expired (that is
// why the caller is refreshing); the refresh token must be valid.
func VerifyTokens(accessToken, refreshToken, privateKeyFile string) (auth.Claims, auth.Claims, error) {
	keyData, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing private key")
	}

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &privateKey.PublicKey, nil
	}

	var accessClaims auth.Claims
	if _, err = jwt.ParseWithClaims(accessToken, &accessClaims, keyFunc); err != nil {
		ve, ok := err.(*jwt.ValidationError)
		if !ok || ve.Errors&jwt.ValidationErrorExpired == 0 {
			return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing access token")
		}
	}

	var refreshClaims auth.Claims
	token, err := jwt.ParseWithClaims(refreshToken, &refreshClaims, keyFunc)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing refresh token")
	}
	if !token.Valid {
		return auth.Claims{}, auth.Claims{}, errors.New("invalid refresh token")
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}
