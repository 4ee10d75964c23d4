package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/errors"
	"vyapkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleOutput(outcome string) *usecase.AuthOutput {
	accountID := uuid.New()

	return &usecase.AuthOutput{
		Account: &entity.Account{
			ID:       accountID,
			Email:    "asha@example.com",
			FullName: "Asha Rao",
			Phone:    "9876543210",
			Status:   entity.AccountStatusActive,
			Roles:    entity.Roles{entity.RoleBuyer},
		},
		Session: &entity.SessionCredential{
			Token:     "session-token",
			Subject:   accountID,
			Roles:     entity.Roles{entity.RoleBuyer},
			ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Outcome: outcome,
	}
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServer(t)
	out := sampleOutput("authenticated")
	s.authUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{IDToken: "id-token"}).Return(out, nil).Once()

	rec := s.do(http.MethodPost, "/auth/login", `{"idToken":"id-token"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var body AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, out.Account.ID, body.ID)
	assert.Equal(t, "asha@example.com", body.Email)
	assert.Equal(t, "ACTIVE", body.Status)
	assert.Equal(t, []string{"BUYER"}, body.Roles)
	assert.Equal(t, "session-token", body.Token)
	assert.True(t, out.Session.ExpiresAt.Equal(body.ExpiresAt))
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(s *testServer)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing id token",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "malformed json",
			body:       `{"idToken":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name: "not registered",
			body: `{"idToken":"tok"}`,
			setupMock: func(s *testServer) {
				s.authUC.EXPECT().Login(mock.Anything, mock.Anything).
					Return(nil, domainerrors.ErrAccountNotRegistered.WrapMessage("ext-1")).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ACCOUNT_NOT_REGISTERED",
		},
		{
			name: "expired token",
			body: `{"idToken":"tok"}`,
			setupMock: func(s *testServer) {
				s.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrExpiredToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "EXPIRED_TOKEN",
		},
		{
			name: "provider unavailable",
			body: `{"idToken":"tok"}`,
			setupMock: func(s *testServer) {
				s.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrProviderUnavailable).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "PROVIDER_UNAVAILABLE",
		},
		{
			name: "unknown error",
			body: `{"idToken":"tok"}`,
			setupMock: func(s *testServer) {
				s.authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			rec := s.do(http.MethodPost, "/auth/login", tt.body, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantStatus >= http.StatusInternalServerError {
				assert.Nil(t, env.Error.Details)
				assert.NotContains(t, rec.Body.String(), "boom")
			}
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	s := newTestServer(t)
	out := sampleOutput("created")

	s.authUC.EXPECT().Register(mock.Anything, &usecase.RegisterInput{
		IDToken: "id-token",
		Payload: usecase.RegistrationPayload{
			FullName:     "Vikram Shah",
			Phone:        "9876543210",
			Role:         "seller",
			BusinessName: "Shah Textiles",
			TaxID:        "27ABCDE1234F1Z5",
		},
	}).Return(out, nil).Once()

	rec := s.do(http.MethodPost, "/auth/register", `{
		"idToken": "id-token",
		"fullName": "Vikram Shah",
		"phone": "9876543210",
		"role": "seller",
		"businessName": "Shah Textiles",
		"taxId": "27ABCDE1234F1Z5"
	}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Nil(t, env.Error)
	assert.Contains(t, string(env.Data), `"token":"session-token"`)
}

func TestAuthHandler_Register_ValidationDetails(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/auth/register", `{"idToken":"tok","fullName":"Asha","phone":"98765","role":"BUYER"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, "phone must be exactly 10 characters", env.Error.Details)
}

func TestAuthHandler_Register_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "invalid role", err: domainerrors.ErrInvalidRole.WrapMessage("ADMIN"), wantCode: "INVALID_ROLE"},
		{name: "invalid seller data", err: domainerrors.ErrInvalidSellerData.WithDetails("businessName is required"), wantCode: "INVALID_SELLER_DATA"},
		{name: "already registered", err: domainerrors.ErrAccountAlreadyRegistered, wantCode: "ACCOUNT_ALREADY_REGISTERED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.authUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := s.do(http.MethodPost, "/auth/register", `{"idToken":"tok","fullName":"Asha","phone":"9876543210","role":"ADMIN"}`, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestAuthHandler_FirebaseLogin(t *testing.T) {
	t.Run("bearer token without body is a pure login", func(t *testing.T) {
		s := newTestServer(t)
		s.authUC.EXPECT().FirebaseLogin(mock.Anything, &usecase.FirebaseLoginInput{IDToken: "firebase-token"}).
			Return(sampleOutput("authenticated"), nil).Once()

		rec := s.do(http.MethodPost, "/auth/firebase-login", "", bearer("firebase-token"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("body is passed as registration payload", func(t *testing.T) {
		s := newTestServer(t)
		s.authUC.EXPECT().FirebaseLogin(mock.Anything, &usecase.FirebaseLoginInput{
			IDToken: "firebase-token",
			Payload: &usecase.RegistrationPayload{FullName: "Asha Rao", Phone: "9876543210", Role: "BUYER"},
		}).Return(sampleOutput("created"), nil).Once()

		rec := s.do(http.MethodPost, "/auth/firebase-login",
			`{"fullName":"Asha Rao","phone":"9876543210","role":"BUYER"}`, bearer("firebase-token"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("empty json object is a pure login", func(t *testing.T) {
		s := newTestServer(t)
		s.authUC.EXPECT().FirebaseLogin(mock.Anything, &usecase.FirebaseLoginInput{IDToken: "firebase-token"}).
			Return(nil, domainerrors.ErrAccountNotRegistered).Once()

		rec := s.do(http.MethodPost, "/auth/firebase-login", `{}`, bearer("firebase-token"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ACCOUNT_NOT_REGISTERED", env.Error.Code)
	})

	t.Run("phone without role reaches the usecase unvalidated", func(t *testing.T) {
		s := newTestServer(t)
		s.authUC.EXPECT().FirebaseLogin(mock.Anything, &usecase.FirebaseLoginInput{
			IDToken: "id-token",
			Payload: &usecase.RegistrationPayload{Phone: "+91 98765 43210"},
		}).Return(sampleOutput("authenticated"), nil).Once()

		rec := s.do(http.MethodPost, "/auth/firebase-login", `{"phone":"+91 98765 43210"}`, bearer("id-token"))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, decodeEnvelope(t, rec).Error)
	})

	t.Run("missing bearer token", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(http.MethodPost, "/auth/firebase-login", `{"role":"BUYER"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "MISSING_ID_TOKEN", env.Error.Code)
	})

	t.Run("non bearer scheme", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(http.MethodPost, "/auth/firebase-login", "", map[string]string{"Authorization": "Basic abc"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email already linked", func(t *testing.T) {
		s := newTestServer(t)
		s.authUC.EXPECT().FirebaseLogin(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrEmailAlreadyLinked).Once()

		rec := s.do(http.MethodPost, "/auth/firebase-login", `{"role":"BUYER"}`, bearer("firebase-token"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "EMAIL_ALREADY_LINKED", env.Error.Code)
	})

	t.Run("blocked account hides details", func(t *testing.T) {
		s := newTestServer(t)
		s.authUC.EXPECT().FirebaseLogin(mock.Anything, mock.Anything).
			Return(nil, domainerrors.ErrAccountBlocked.WithDetails("blocked by admin")).Once()

		rec := s.do(http.MethodPost, "/auth/firebase-login", "", bearer("firebase-token"))
		assert.Equal(t, http.StatusForbidden, rec.Code)

		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ACCOUNT_BLOCKED", env.Error.Code)
		assert.Nil(t, env.Error.Details)
	})
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(decodeEnvelope(t, rec).Data))
}
