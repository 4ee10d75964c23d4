// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "vyapkart/internal/delivery/context"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"
	"vyapkart/internal/domain/service"
	"vyapkart/internal/errors"
	"vyapkart/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
)

// Entry point labels used for metrics and logs.
const (
	entryPointLogin         = "login"
	entryPointRegister      = "register"
	entryPointFirebaseLogin = "firebase_login"
)

// maxReconcileAttempts bounds the retry after a storage conflict: one fresh transaction, then give up.
const maxReconcileAttempts = 2

// Rules for the optional profile fields of a combined login that creates or links.
var (
	fullNameRule = fmt.Sprintf("omitempty,max=%d", entity.MaxFullNameLength)
	phoneRule    = fmt.Sprintf("omitempty,len=%d,numeric", entity.PhoneLength)
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	roleRepo    repository.RoleRepository
	verifier    service.IdentityVerifier
	issuer      service.SessionIssuer
	provisioner usecase.Provisioner
	publisher   service.EventPublisher
	metrics     service.ReconciliationMetrics
	validate    *validator.Validate
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	RoleRepo    repository.RoleRepository
	Verifier    service.IdentityVerifier
	Issuer      service.SessionIssuer
	Provisioner usecase.Provisioner
	Publisher   service.EventPublisher
	Metrics     service.ReconciliationMetrics
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		roleRepo:    params.RoleRepo,
		verifier:    params.Verifier,
		issuer:      params.Issuer,
		provisioner: params.Provisioner,
		publisher:   params.Publisher,
		metrics:     params.Metrics,
		validate:    validator.New(),
		logger:      params.Logger,
	}
}

// reconciliation is the committed result of one pass through the decision tree.
type reconciliation struct {
	account       *entity.Account
	outcome       string
	sellerProfile *entity.SellerProfile
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login signs in an identity that already has an account. Nothing is ever written.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (output *usecase.AuthOutput, err error) {
	start := time.Now()
	defer func() { srv.observe(entryPointLogin, start, output, err) }()

	assertion, err := srv.verify(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	account, err := srv.accountRepo.FindByExternalID(ctx, assertion.ExternalID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotRegistered
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account by external id")
	}
	if !account.IsActive() {
		return nil, domainerrors.ErrAccountBlocked.WrapMessage("account status " + account.Status.String())
	}

	return srv.issueSession(ctx, &reconciliation{account: account, outcome: service.OutcomeAuthenticated})
}

// Register creates or links an account. The role and seller fields are validated before the token is verified.
// Profile field formats are enforced by the request DTO.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (output *usecase.AuthOutput, err error) {
	start := time.Now()
	defer func() { srv.observe(entryPointRegister, start, output, err) }()

	payload := input.Payload
	role, err := srv.provisioner.ValidateRole(ctx, srv.roleRepo, payload.Role)
	if err != nil {
		return nil, err
	}
	if role.Name == entity.RoleSeller {
		if err := srv.provisioner.ValidateSellerFields(payload.BusinessName, payload.TaxID); err != nil {
			return nil, err
		}
	}

	assertion, err := srv.verify(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	result, err := srv.reconcile(ctx, entryPointRegister, assertion, &payload, true)
	if err != nil {
		return nil, err
	}

	return srv.issueSession(ctx, result)
}

// FirebaseLogin authenticates, links by email, or creates an account depending on what is stored.
func (srv *authService) FirebaseLogin(ctx context.Context, input *usecase.FirebaseLoginInput) (output *usecase.AuthOutput, err error) {
	start := time.Now()
	defer func() { srv.observe(entryPointFirebaseLogin, start, output, err) }()

	assertion, err := srv.verify(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}

	result, err := srv.reconcile(ctx, entryPointFirebaseLogin, assertion, input.Payload, false)
	if err != nil {
		return nil, err
	}

	return srv.issueSession(ctx, result)
}

func (srv *authService) verify(ctx context.Context, idToken string) (*entity.IdentityAssertion, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, domainerrors.ErrMissingIDToken
	}

	assertion, err := srv.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.log(ctx).Info("Identity token rejected", slog.String("provider", string(srv.verifier.GetProvider())), slog.Any("error", err))

		return nil, err
	}

	assertion.Email = normalizeEmail(assertion.Email)

	return assertion, nil
}

// reconcile runs the decision tree in a transaction and re-runs it once in a fresh transaction
// when it loses a race on a unique constraint.
func (srv *authService) reconcile(
	ctx context.Context,
	entryPoint string,
	assertion *entity.IdentityAssertion,
	payload *usecase.RegistrationPayload,
	strictRegister bool,
) (*reconciliation, error) {
	for attempt := 1; ; attempt++ {
		result, err := srv.reconcileOnce(ctx, assertion, payload, strictRegister)
		if err == nil {
			srv.publishEvents(ctx, assertion, result)

			return result, nil
		}
		if !errors.Is(err, domainerrors.ErrStorageConflict) {
			return nil, err
		}

		if attempt >= maxReconcileAttempts {
			srv.log(ctx).Error("Reconciliation conflicted on retry",
				slog.String("entryPoint", entryPoint),
				slog.String("externalID", assertion.ExternalID),
				slog.Any("error", err))

			return nil, domainerrors.ErrInternalError.WrapMessage("reconciliation conflicted on retry")
		}

		srv.metrics.ObserveOutcome(entryPoint, service.OutcomeRetried)
		srv.log(ctx).Warn("Reconciliation hit a storage conflict, retrying",
			slog.String("entryPoint", entryPoint),
			slog.String("externalID", assertion.ExternalID),
			slog.Any("error", err))
	}
}

func (srv *authService) reconcileOnce(
	ctx context.Context,
	assertion *entity.IdentityAssertion,
	payload *usecase.RegistrationPayload,
	strictRegister bool,
) (*reconciliation, error) {
	var result *reconciliation

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		accountRepo := repos.NewAccountRepository()

		account, err := accountRepo.FindByExternalID(ctx, assertion.ExternalID)
		switch {
		case err == nil:
			if strictRegister {
				return domainerrors.ErrAccountAlreadyRegistered
			}
			if !account.IsActive() {
				return domainerrors.ErrAccountBlocked.WrapMessage("account status " + account.Status.String())
			}
			result = &reconciliation{account: account, outcome: service.OutcomeAuthenticated}

			return nil
		case !errors.Is(err, repository.ErrAccountNotFound):
			return errors.Wrap(err, "failed to find account by external id")
		}

		if payload.IsPureLogin() {
			return domainerrors.ErrAccountNotRegistered
		}
		if !strictRegister {
			if err := srv.validateProfile(payload); err != nil {
				return err
			}
		}

		account, outcome, err := srv.linkOrCreate(ctx, repos, assertion, payload)
		if err != nil {
			return err
		}
		result = &reconciliation{account: account, outcome: outcome}

		if account.HasRoles() {
			return nil
		}

		provisioned, err := srv.provisioner.Provision(ctx, repos, account, payload)
		if err != nil {
			return err
		}
		account.Roles = provisioned.Roles
		result.sellerProfile = provisioned.SellerProfile

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (srv *authService) linkOrCreate(
	ctx context.Context,
	repos repository.RepositoryFactory,
	assertion *entity.IdentityAssertion,
	payload *usecase.RegistrationPayload,
) (*entity.Account, string, error) {
	accountRepo := repos.NewAccountRepository()
	fullName := strings.TrimSpace(payload.FullName)
	phone := strings.TrimSpace(payload.Phone)

	account, err := accountRepo.FindByEmail(ctx, assertion.Email)
	if err == nil {
		if account.IsLinked() {
			return nil, "", domainerrors.ErrEmailAlreadyLinked
		}
		if !account.IsActive() {
			return nil, "", domainerrors.ErrAccountBlocked.WrapMessage("account status " + account.Status.String())
		}

		if err := accountRepo.LinkExternalID(ctx, account.ID, assertion.ExternalID, fullName, phone); err != nil {
			return nil, "", errors.Wrap(err, "failed to link external id")
		}

		account.ExternalID = assertion.ExternalID
		if fullName != "" {
			account.FullName = fullName
		}
		if phone != "" {
			account.Phone = phone
		}

		return account, service.OutcomeLinked, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, "", errors.Wrap(err, "failed to find account by email")
	}

	role, err := srv.provisioner.ValidateRole(ctx, repos.NewRoleRepository(), payload.Role)
	if err != nil {
		return nil, "", err
	}
	if role.Name == entity.RoleSeller {
		if err := srv.provisioner.ValidateSellerFields(payload.BusinessName, payload.TaxID); err != nil {
			return nil, "", err
		}
	}

	if fullName == "" {
		fullName = truncateRunes(claimString(assertion.RawClaims, "name"), entity.MaxFullNameLength)
	}

	account = &entity.Account{
		ExternalID: assertion.ExternalID,
		Email:      assertion.Email,
		FullName:   fullName,
		Phone:      phone,
		Status:     entity.AccountStatusActive,
	}
	if err := accountRepo.Create(ctx, account); err != nil {
		return nil, "", errors.Wrap(err, "failed to create account")
	}

	return account, service.OutcomeCreated, nil
}

func (srv *authService) issueSession(ctx context.Context, result *reconciliation) (*usecase.AuthOutput, error) {
	session, err := srv.issuer.Issue(result.account, result.account.Roles)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session")
	}

	srv.log(ctx).Info("Session issued",
		slog.String("accountID", result.account.ID.String()),
		slog.String("outcome", result.outcome),
		slog.Any("roles", result.account.Roles.ToStrings()))

	return &usecase.AuthOutput{
		Account: result.account,
		Session: session,
		Outcome: result.outcome,
	}, nil
}

// publishEvents runs after commit. Delivery is best effort: failures are logged, never returned.
func (srv *authService) publishEvents(ctx context.Context, assertion *entity.IdentityAssertion, result *reconciliation) {
	var events []*service.AccountEvent

	base := service.AccountEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		AccountID:  result.account.ID.String(),
		Email:      result.account.Email,
		ExternalID: assertion.ExternalID,
		Roles:      result.account.Roles.ToStrings(),
		OccurredAt: time.Now().UTC(),
	}

	switch result.outcome {
	case service.OutcomeCreated:
		event := base
		event.Type = service.AccountEventRegistered
		events = append(events, &event)
	case service.OutcomeLinked:
		event := base
		event.Type = service.AccountEventLinked
		events = append(events, &event)
	}

	if result.sellerProfile != nil {
		event := base
		event.Type = service.AccountEventSellerOnboardingRequested
		event.BusinessName = result.sellerProfile.BusinessName
		events = append(events, &event)
	}

	for _, event := range events {
		if err := srv.publisher.PublishAccountEvent(ctx, event); err != nil {
			srv.log(ctx).Warn("Failed to publish account event",
				slog.String("type", string(event.Type)),
				slog.String("accountID", event.AccountID),
				slog.Any("error", err))
		}
	}
}

func (srv *authService) observe(entryPoint string, start time.Time, output *usecase.AuthOutput, err error) {
	srv.metrics.ObserveDuration(entryPoint, time.Since(start))

	switch {
	case err == nil:
		srv.metrics.ObserveOutcome(entryPoint, output.Outcome)
	case isClientError(err):
		srv.metrics.ObserveOutcome(entryPoint, service.OutcomeRejected)
	default:
		srv.metrics.ObserveOutcome(entryPoint, service.OutcomeFailed)
	}
}

// validateProfile checks the optional profile fields of a payload that will create or link an account.
func (srv *authService) validateProfile(payload *usecase.RegistrationPayload) error {
	var problems []string

	if err := srv.validate.Var(strings.TrimSpace(payload.FullName), fullNameRule); err != nil {
		problems = append(problems, fmt.Sprintf("fullName must be at most %d characters", entity.MaxFullNameLength))
	}
	if err := srv.validate.Var(strings.TrimSpace(payload.Phone), phoneRule); err != nil {
		problems = append(problems, fmt.Sprintf("phone must be exactly %d digits", entity.PhoneLength))
	}

	if len(problems) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
	}

	return nil
}

func isClientError(err error) bool {
	appErr, ok := errors.AsType[domainerrors.AppError](err)

	return ok && appErr.HTTPCode() < 500
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)

	return strings.TrimSpace(s)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return strings.TrimSpace(string(runes[:limit]))
}
