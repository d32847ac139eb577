package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTTL bounds how long an access token stays valid.
	AccessTTL = 24 * time.Hour
	// RefreshTTL bounds how long a refresh token stays valid.
	RefreshTTL = 7 * 24 * time.Hour
)

var (
	accessSecret  []byte
	refreshSecret []byte
)

// Init configures the signing secrets. Both must be set; an unset secret is a
// configuration error and the process should not come up without it.
func Init(access, refresh string) error {
	if access == "" {
		return errors.New("jwt: access secret is not set")
	}
	if refresh == "" {
		return errors.New("jwt: refresh secret is not set")
	}
	accessSecret = []byte(access)
	refreshSecret = []byte(refresh)
	return nil
}

// Claims is the JWT payload carried by both token kinds. The administrator
// id travels in the registered Subject claim.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwtlib.RegisteredClaims
}

// SignAccess creates a signed access token for the given administrator.
func SignAccess(id, email, firstName, lastName string) (string, error) {
	return sign(id, email, firstName, lastName, AccessTTL, accessSecret)
}

// SignRefresh creates a signed refresh token for the given administrator.
func SignRefresh(id, email, firstName, lastName string) (string, error) {
	return sign(id, email, firstName, lastName, RefreshTTL, refreshSecret)
}

func sign(id, email, firstName, lastName string, ttl time.Duration, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt: signing secret not initialized")
	}
	claims := Claims{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseAccess validates an access token and returns its claims.
func ParseAccess(tokenStr string) (*Claims, error) {
	return parse(tokenStr, accessSecret)
}

// ParseRefresh validates a refresh token and returns its claims.
func ParseRefresh(tokenStr string) (*Claims, error) {
	return parse(tokenStr, refreshSecret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
