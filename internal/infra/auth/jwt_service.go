// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vyapkart/config"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/service"
	"vyapkart/internal/errors"
)

// minSessionSecretLength is the HS256 key size floor (256 bits).
const minSessionSecretLength = 32

// jwtService is a concrete implementation of the SessionIssuer interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
	issuer string        // Value of the iss claim.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new session issuer instance.
func NewJWTService(cfg *config.Config) (service.SessionIssuer, error) {
	secret := cfg.SecretKey.Session
	if len(secret) < minSessionSecretLength {
		return nil, errors.Errorf("session secret must be at least %d bytes", minSessionSecretLength)
	}
	if cfg.Session == nil || cfg.Session.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    cfg.Session.TTL,
		issuer: cfg.Session.Issuer,
		now:    time.Now,
	}, nil
}

// Issue signs a session credential for the account. Roles keep the order they are given in.
func (s *jwtService) Issue(account *entity.Account, roles entity.Roles) (*entity.SessionCredential, error) {
	if account == nil || account.ID == uuid.Nil {
		return nil, errors.New("cannot issue a session for an unsaved account")
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := &service.SessionClaims{
		Email: account.Email,
		Roles: roles.ToStrings(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign session token")
	}

	return &entity.SessionCredential{
		Token:     token,
		Subject:   account.ID,
		Email:     account.Email,
		Roles:     append(entity.Roles{}, roles...),
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Decode validates the token and returns its claims. Every failure maps to ErrInvalidCredential.
func (s *jwtService) Decode(tokenString string) (*service.SessionClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("empty session token")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	claims := &service.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage(err.Error())
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("session token is not valid")
	}

	if _, err := claims.AccountID(); err != nil {
		return nil, domainerrors.ErrInvalidCredential.WrapMessage("session subject is not an account id")
	}

	return claims, nil
}
