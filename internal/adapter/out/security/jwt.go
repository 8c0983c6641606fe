package security

import (
	"errors"
	"fmt"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTSigner issues and verifies HS256 access tokens carrying the caller identity.
type JWTSigner struct {
	secret []byte
}

var _ service.TokenSigner = (*JWTSigner)(nil)

func NewJWTSigner(secret string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTSigner{secret: []byte(secret)}, nil
}

type accessClaims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(identity model.Identity, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		UserID: identity.UserID,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	return token.SignedString(s.secret)
}

func (s *JWTSigner) Parse(raw string) (model.Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &accessClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return model.Identity{}, err
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return model.Identity{}, errors.New("invalid token claims")
	}
	if claims.UserID <= 0 {
		return model.Identity{}, fmt.Errorf("invalid userId claim: %d", claims.UserID)
	}

	return model.Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
