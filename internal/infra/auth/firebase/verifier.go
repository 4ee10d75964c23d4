// Package firebase verifies Firebase Authentication ID tokens.
package firebase

import (
	"context"
	"log/slog"
	"strings"

	"vyapkart/config"
	deliverycontext "vyapkart/internal/delivery/context"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/service"
	"vyapkart/internal/errors"
	infraauth "vyapkart/internal/infra/auth"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

const issuerPrefix = "https://securetoken.google.com/"

// tokenVerifier is the subset of *auth.Client used here.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// errorClassifier groups the firebase error predicates so tests can substitute them.
type errorClassifier struct {
	isExpired            func(error) bool
	isInvalid            func(error) bool
	isCertificateFailure func(error) bool
}

var firebaseClassifier = errorClassifier{
	isExpired:            auth.IsIDTokenExpired,
	isInvalid:            auth.IsIDTokenInvalid,
	isCertificateFailure: auth.IsCertificateFetchFailed,
}

type verifier struct {
	client     tokenVerifier
	issuer     string
	classifier errorClassifier
	logger     *slog.Logger
}

// NewVerifier initialises a Firebase app for the configured project and returns an
// IdentityVerifier backed by its auth client.
func NewVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityVerifier, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, errors.New("firebase.projectId is required for the firebase identity provider")
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return newVerifier(client, cfg.Firebase.ProjectID, firebaseClassifier, logger), nil
}

func newVerifier(client tokenVerifier, projectID string, classifier errorClassifier, logger *slog.Logger) *verifier {
	return &verifier{
		client:     client,
		issuer:     issuerPrefix + projectID,
		classifier: classifier,
		logger:     logger,
	}
}

// VerifyIDToken implements service.IdentityVerifier.
func (v *verifier) VerifyIDToken(ctx context.Context, idToken string) (*entity.IdentityAssertion, error) {
	idToken = strings.TrimSpace(idToken)
	if !infraauth.IsCompactJWS(idToken) {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("id token is not a compact JWS")
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, v.classify(ctx, err)
	}

	if token.Issuer != v.issuer {
		return nil, domainerrors.ErrUntrustedIssuer.WrapMessage("unexpected issuer " + token.Issuer)
	}

	externalID := token.UID
	if externalID == "" {
		externalID = token.Subject
	}
	email := infraauth.StringClaim(token.Claims, "email")
	if externalID == "" || email == "" {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("id token lacks subject or email")
	}

	return &entity.IdentityAssertion{
		ExternalID: externalID,
		Email:      email,
		Provider:   entity.ProviderTypeFirebase,
		RawClaims:  token.Claims,
	}, nil
}

// GetProvider returns the identity provider type.
func (v *verifier) GetProvider() entity.ProviderType {
	return entity.ProviderTypeFirebase
}

func (v *verifier) classify(ctx context.Context, err error) error {
	switch {
	case v.classifier.isExpired(err):
		return domainerrors.ErrExpiredToken.WrapMessage(err.Error())
	case v.classifier.isCertificateFailure(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		v.log(ctx).Warn("Firebase token verification unavailable", slog.Any("error", err))

		return domainerrors.ErrProviderUnavailable.WrapMessage(err.Error())
	case v.classifier.isInvalid(err) && mentionsIssuer(err):
		return domainerrors.ErrUntrustedIssuer.WrapMessage(err.Error())
	default:
		return domainerrors.ErrMalformedToken.WrapMessage(err.Error())
	}
}

// mentionsIssuer detects the firebase "iss"/"aud" claim mismatch messages, which mean the
// token was minted for another project.
func mentionsIssuer(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, `"iss"`) || strings.Contains(msg, `"aud"`) ||
		strings.Contains(msg, "issuer") || strings.Contains(msg, "audience")
}

func (v *verifier) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, v.logger)
}
