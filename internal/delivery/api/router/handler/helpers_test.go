package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"vyapkart/internal/delivery/api/middleware"
	"vyapkart/internal/delivery/api/response"
	"vyapkart/internal/delivery/api/validator"
	deliverymiddleware "vyapkart/internal/delivery/middleware"
	"vyapkart/internal/domain/entity"
	mockSvc "vyapkart/internal/mocks/service"
	mockUC "vyapkart/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	echo      *echo.Echo
	authUC    *mockUC.MockAuthUsecase
	accountUC *mockUC.MockAccountUsecase
	issuer    *mockSvc.MockSessionIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := &testServer{
		echo:      echo.New(),
		authUC:    mockUC.NewMockAuthUsecase(t),
		accountUC: mockUC.NewMockAccountUsecase(t),
		issuer:    mockSvc.NewMockSessionIssuer(t),
	}

	s.echo.Validator = validator.New()
	s.echo.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	s.echo.Use(deliverymiddleware.NewRequestIDMiddleware(logger).Process)

	authMiddleware := middleware.NewAuthMiddleware(s.issuer, logger)

	authHandler := NewAuthHandler(AuthHandlerParams{AuthUC: s.authUC, Logger: logger})
	accountHandler := NewAccountHandler(AccountHandlerParams{AccountUC: s.accountUC, Logger: logger})

	s.echo.GET("/health", HealthCheck)
	s.echo.POST("/auth/login", authHandler.Login)
	s.echo.POST("/auth/register", authHandler.Register)
	s.echo.POST("/auth/firebase-login", authHandler.FirebaseLogin)
	s.echo.GET("/accounts/me", accountHandler.GetMe, authMiddleware.Authenticate, authMiddleware.RequireAuth)
	s.echo.GET("/accounts/me/seller", accountHandler.GetMySellerProfile,
		authMiddleware.Authenticate, authMiddleware.RequireAuth, authMiddleware.RequireRole(entity.RoleSeller))

	return s
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  *response.MetaInfo  `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Meta)
	require.NotEmpty(t, env.Meta.RequestID)

	return env
}

func bearer(token string) map[string]string {
	return map[string]string{echo.HeaderAuthorization: "Bearer " + token}
}
