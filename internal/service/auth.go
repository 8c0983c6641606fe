package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogapi/internal/model"
	"blogapi/pkg/logger"
)

// TokenTTL is the fixed lifetime of an issued credential.
const TokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth.go -destination=./auth_mock.go -package=service
type UserStorage interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenSigner interface {
	Sign(identity model.Identity, issuedAt, expiresAt time.Time) (string, error)
	Parse(raw string) (model.Identity, error)
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Identity  model.Identity
}

type AuthService struct {
	users  UserStorage
	hasher PasswordHasher
	signer TokenSigner
	now    func() time.Time
}

func NewAuthService(users UserStorage, hasher PasswordHasher, signer TokenSigner) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		signer: signer,
		now:    time.Now,
	}
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (model.User, error) {
	if err := validateRequest(req); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, ErrInvalidRequest) {
		return model.User{}, err
	}
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return model.User{}, storageError("create user", err)
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := validateRequest(req); err != nil {
		return LoginResult{}, err
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("login rejected", "reason", "unknown email")
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, storageError("get user by email", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		log.Warn("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return LoginResult{}, ErrInvalidCredentials
	}

	identity := model.Identity{UserID: user.ID, Role: model.RoleUser}
	issuedAt := s.now()
	expiresAt := issuedAt.Add(TokenTTL)

	token, err := s.signer.Sign(identity, issuedAt, expiresAt)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	return LoginResult{Token: token, ExpiresAt: expiresAt, Identity: identity}, nil
}

// Authenticate resolves a raw credential to the identity it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	if token == "" {
		return model.Identity{}, fmt.Errorf("%w: missing credential", ErrUnauthorized)
	}

	identity, err := s.signer.Parse(token)
	if err != nil {
		logger.FromContext(ctx).Debug("credential rejected", "error", err)
		return model.Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if identity.UserID <= 0 {
		return model.Identity{}, fmt.Errorf("%w: credential without subject", ErrUnauthorized)
	}
	return identity, nil
}
