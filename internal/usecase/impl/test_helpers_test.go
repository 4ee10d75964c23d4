package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"vyapkart/config"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/service"
	"vyapkart/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Seller: &config.SellerConfig{
			TaxIDPattern:          `^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[A-Z0-9]{3}$`,
			BusinessNameMaxLength: 255,
		},
	}
}

// stubVerifier accepts the tokens it was seeded with and rejects everything else as malformed.
type stubVerifier struct {
	mu     sync.Mutex
	tokens map[string]*entity.IdentityAssertion
	calls  int
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{tokens: make(map[string]*entity.IdentityAssertion)}
}

func (v *stubVerifier) add(token, externalID, email string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.tokens[token] = &entity.IdentityAssertion{
		ExternalID: externalID,
		Email:      email,
		Provider:   entity.ProviderTypeFirebase,
		RawClaims:  map[string]any{"sub": externalID, "email": email},
	}
}

func (v *stubVerifier) callCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.calls
}

func (v *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*entity.IdentityAssertion, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.calls++
	assertion, ok := v.tokens[idToken]
	if !ok {
		return nil, domainerrors.ErrMalformedToken
	}
	copied := *assertion

	return &copied, nil
}

func (v *stubVerifier) GetProvider() entity.ProviderType {
	return entity.ProviderTypeFirebase
}

// stubIssuer mints opaque tokens that embed the subject.
type stubIssuer struct{}

func (stubIssuer) Issue(account *entity.Account, roles entity.Roles) (*entity.SessionCredential, error) {
	now := time.Now()

	return &entity.SessionCredential{
		Token:     "session-" + account.ID.String(),
		Subject:   account.ID,
		Email:     account.Email,
		Roles:     append(entity.Roles(nil), roles...),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

func (stubIssuer) Decode(string) (*service.SessionClaims, error) {
	return nil, domainerrors.ErrInvalidCredential
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AccountEvent
	err    error
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) types() []service.AccountEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]service.AccountEventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

type recordingMetrics struct {
	mu        sync.Mutex
	outcomes  map[string]int
	durations int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{outcomes: make(map[string]int)}
}

func (m *recordingMetrics) ObserveOutcome(entryPoint, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outcomes[entryPoint+"/"+outcome]++
}

func (m *recordingMetrics) ObserveDuration(string, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.durations++
}

func (m *recordingMetrics) count(entryPoint, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.outcomes[entryPoint+"/"+outcome]
}

type authFixture struct {
	store     *memStore
	verifier  *stubVerifier
	publisher *recordingPublisher
	metrics   *recordingMetrics
	service   usecase.AuthUsecase
}

func newAuthFixture(store *memStore) *authFixture {
	prov, err := NewProvisioner(newTestConfig())
	if err != nil {
		panic(err)
	}

	f := &authFixture{
		store:     store,
		verifier:  newStubVerifier(),
		publisher: &recordingPublisher{},
		metrics:   newRecordingMetrics(),
	}
	f.service = NewAuthService(AuthServiceParams{
		TxManager:   store,
		AccountRepo: &memAccountRepo{store: store},
		RoleRepo:    &memRoleRepo{store: store},
		Verifier:    f.verifier,
		Issuer:      stubIssuer{},
		Provisioner: prov,
		Publisher:   f.publisher,
		Metrics:     f.metrics,
		Logger:      newDiscardLogger(),
	})

	return f
}

func buyerPayload() *usecase.RegistrationPayload {
	return &usecase.RegistrationPayload{FullName: "Asha Rao", Phone: "9876543210", Role: "buyer"}
}

func sellerPayload() *usecase.RegistrationPayload {
	return &usecase.RegistrationPayload{
		FullName:     "Vikram Shah",
		Phone:        "9123456780",
		Role:         "SELLER",
		BusinessName: "Shah Textiles",
		TaxID:        "27ABCDE1234F1Z5",
	}
}
