package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	domainerrors "helvetia/contexts/identity/account-service/domain/errors"
	"helvetia/contexts/identity/account-service/ports"
)

// BcryptHasher hashes passwords with bcrypt at the default cost.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// JWTIssuer signs HS256 session tokens carrying the user id and role.
type JWTIssuer struct {
	Secret []byte
	TTL    time.Duration
}

func (i JWTIssuer) Issue(userID string, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.TTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i JWTIssuer) Parse(raw string) (ports.TokenClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerrors.ErrInvalidToken
		}
		return i.Secret, nil
	})
	if err != nil || !token.Valid {
		return ports.TokenClaims{}, domainerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.TokenClaims{}, domainerrors.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return ports.TokenClaims{}, domainerrors.ErrInvalidToken
	}
	return ports.TokenClaims{UserID: sub, Role: role}, nil
}
