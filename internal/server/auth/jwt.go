// Package auth issues and checks the HMAC-signed tokens used by the admin
// surface: access tokens, per-form keys and delete confirmation keys.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token minted for one purpose is rejected for another.
const (
	PurposeAccess  = "access"
	PurposeForm    = "form"
	PurposeConfirm = "confirm"
)

// Claims carries the standard claims plus the token purpose and, for
// confirmation keys, the path being confirmed.
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"pur"`
	Path    string `json:"path,omitempty"`
}

func sign(claims Claims, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func parse(tokenString string, secretKey []byte, purpose string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.Purpose != purpose {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// GenerateToken mints an admin access token for subject.
func GenerateToken(subject string, secretKey []byte, validity time.Duration) (string, error) {
	return sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Purpose:          PurposeAccess,
	}, secretKey, validity)
}

// GetSubjectFromToken validates an access token and returns its subject.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := parse(tokenString, secretKey, PurposeAccess)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// GenerateFormKey mints a key that must accompany state-changing form posts.
func GenerateFormKey(secretKey []byte, validity time.Duration) (string, error) {
	return sign(Claims{Purpose: PurposeForm}, secretKey, validity)
}

// CheckFormKey returns common.ErrFormInvalid for anything but a valid,
// unexpired form key.
func CheckFormKey(key string, secretKey []byte) error {
	if _, err := parse(key, secretKey, PurposeForm); err != nil {
		return common.ErrFormInvalid
	}
	return nil
}

// GenerateConfirmKey mints a key confirming the deletion of path.
func GenerateConfirmKey(path string, secretKey []byte, validity time.Duration) (string, error) {
	return sign(Claims{Purpose: PurposeConfirm, Path: path}, secretKey, validity)
}

// CheckConfirmKey accepts key only if it confirms exactly path.
func CheckConfirmKey(key, path string, secretKey []byte) error {
	claims, err := parse(key, secretKey, PurposeConfirm)
	if err != nil || claims.Path != path {
		return common.ErrFormInvalid
	}
	return nil
}
