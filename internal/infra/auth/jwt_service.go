package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"quizauth/config"
	"quizauth/internal/domain/entity"
	domainerrors "quizauth/internal/domain/errors"
	"quizauth/internal/domain/service"
)

const defaultTokenTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Secret key for signing access tokens.
	ttl    time.Duration    // Time-to-live for access tokens.
	now    func() time.Time // Clock, replaceable in tests.
	parser *jwt.Parser
}

// Option customizes a jwtService.
type Option func(*jwtService)

// WithClock replaces the wall clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewJWTService is the constructor for jwtService.
// The signing secret is read once here and never exposed afterwards.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return NewJWTServiceWithOptions(cfg.SecretKey.Access, ttl)
}

// NewJWTServiceWithOptions builds a token service from an explicit secret and TTL.
func NewJWTServiceWithOptions(secret string, ttl time.Duration, opts ...Option) (service.TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if ttl <= 0 {
		return nil, errors.Errorf("token ttl must be positive, got %s", ttl)
	}

	s := &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		// Rejects signatures whose trailing character differs only in unused bits.
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)

	return s, nil
}

// Issue signs a new access token for the given user.
func (s *jwtService) Issue(userID uuid.UUID, username string) (*entity.IssuedToken, error) {
	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := &service.Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}

	return &entity.IssuedToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the token signature and expiry.
func (s *jwtService) Verify(tokenString string) (*entity.Identity, error) {
	claims := &service.Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired.WrapMessage(err.Error())
		}

		return nil, domainerrors.ErrTokenMalformed.WrapMessage(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("token not valid")
	}

	if claims.UserID == uuid.Nil || claims.Username == "" {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("token is missing identity claims")
	}
	if claims.Subject != claims.UserID.String() {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("token subject does not match userId")
	}

	return &entity.Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}
