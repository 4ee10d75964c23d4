// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"vyapkart/config"
	deliverycontext "vyapkart/internal/delivery/context"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/service"
	"vyapkart/internal/errors"
	infraauth "vyapkart/internal/infra/auth"

	"google.golang.org/api/idtoken"
)

// trustedIssuers are the iss values Google uses for Sign-In ID tokens.
var trustedIssuers = map[string]struct{}{
	"accounts.google.com":         {},
	"https://accounts.google.com": {},
}

// payloadValidator is the subset of *idtoken.Validator used here.
type payloadValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

// AuthServiceImpl implements service.IdentityVerifier for Google ID tokens.
type AuthServiceImpl struct {
	clientID  string
	validator payloadValidator
	logger    *slog.Logger
}

// NewAuthService creates a new Google IdentityVerifier bound to the configured OAuth client id.
func NewAuthService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("googleOAuth.clientId is required for the google identity provider")
	}

	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Google ID token validator")
	}

	return newAuthService(cfg.GoogleOAuth.ClientID, validator, logger), nil
}

func newAuthService(clientID string, validator payloadValidator, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		clientID:  clientID,
		validator: validator,
		logger:    logger,
	}
}

// VerifyIDToken implements service.IdentityVerifier interface
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityAssertion, error) {
	idToken = strings.TrimSpace(idToken)
	if !infraauth.IsCompactJWS(idToken) {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("invalid JWT format")
	}

	payload, err := s.validator.Validate(ctx, idToken, s.clientID)
	if err != nil {
		return nil, s.classify(ctx, err)
	}

	if _, ok := trustedIssuers[payload.Issuer]; !ok {
		return nil, domainerrors.ErrUntrustedIssuer.WrapMessage("invalid issuer: " + payload.Issuer)
	}

	email := infraauth.StringClaim(payload.Claims, "email")
	if payload.Subject == "" || email == "" {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("id token lacks subject or email")
	}

	s.log(ctx).Debug("Google ID token verified", slog.String("subject", payload.Subject))

	return &entity.IdentityAssertion{
		ExternalID: payload.Subject,
		Email:      email,
		Provider:   entity.ProviderTypeGoogle,
		RawClaims:  payload.Claims,
	}, nil
}

// GetProvider returns the identity provider type
func (s *AuthServiceImpl) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}

// classify maps idtoken errors, which are plain formatted errors, onto domain errors.
func (s *AuthServiceImpl) classify(ctx context.Context, err error) error {
	var netErr net.Error
	msg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), errors.As(err, &netErr):
		s.log(ctx).Warn("Google certificate fetch failed", slog.Any("error", err))

		return domainerrors.ErrProviderUnavailable.WrapMessage(err.Error())
	case strings.Contains(msg, "expired"):
		return domainerrors.ErrExpiredToken.WrapMessage(err.Error())
	case strings.Contains(msg, "audience"):
		return domainerrors.ErrUntrustedIssuer.WrapMessage(err.Error())
	case strings.Contains(msg, "unable to retrieve") || strings.Contains(msg, "certs"):
		return domainerrors.ErrProviderUnavailable.WrapMessage(err.Error())
	default:
		return domainerrors.ErrMalformedToken.WrapMessage(err.Error())
	}
}

func (s *AuthServiceImpl) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}
