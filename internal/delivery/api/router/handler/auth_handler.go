// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"vyapkart/internal/delivery/api/middleware"
	"vyapkart/internal/delivery/api/response"
	deliverycontext "vyapkart/internal/delivery/context"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/errors"
	"vyapkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler serves the sign-in and sign-up endpoints.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	IDToken      string `json:"idToken" validate:"required"`
	FullName     string `json:"fullName" validate:"required,max=255"`
	Phone        string `json:"phone" validate:"required,len=10,numeric"`
	Role         string `json:"role" validate:"required"`
	BusinessName string `json:"businessName"`
	TaxID        string `json:"taxId"`
}

// FirebaseLoginRequest is the optional body of POST /auth/firebase-login.
// The identity token travels in the Authorization header. Fields are only checked when
// the body asks for an account to be created or linked, so there are no validate tags.
type FirebaseLoginRequest struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	BusinessName string `json:"businessName"`
	TaxID        string `json:"taxId"`
}

func (r *FirebaseLoginRequest) isEmpty() bool {
	return *r == FirebaseLoginRequest{}
}

// AuthResponse is the account plus the session credential returned by every auth endpoint.
type AuthResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	Roles     []string  `json:"roles"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newAuthResponse(output *usecase.AuthOutput) *AuthResponse {
	account := output.Account

	return &AuthResponse{
		ID:        account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Phone:     account.Phone,
		Status:    account.Status.String(),
		Roles:     output.Session.Roles.ToStrings(),
		Token:     output.Session.Token,
		ExpiresAt: output.Session.ExpiresAt,
	}
}

// Login signs in an identity that already has an account.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{IDToken: req.IDToken})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// Register creates or links the account of an identity that has none.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.Register(c.Request().Context(), &usecase.RegisterInput{
		IDToken: req.IDToken,
		Payload: usecase.RegistrationPayload{
			FullName:     req.FullName,
			Phone:        req.Phone,
			Role:         req.Role,
			BusinessName: req.BusinessName,
			TaxID:        req.TaxID,
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}

// FirebaseLogin signs in, links or creates an account for the bearer identity token.
// Without a role in the body it never creates or links.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	idToken, ok := middleware.BearerToken(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrMissingIDToken)
	}

	// An empty body binds to the zero value.
	var req FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	input := &usecase.FirebaseLoginInput{IDToken: idToken}
	if !req.isEmpty() {
		input.Payload = &usecase.RegistrationPayload{
			FullName:     req.FullName,
			Phone:        req.Phone,
			Role:         req.Role,
			BusinessName: req.BusinessName,
			TaxID:        req.TaxID,
		}
	}

	output, err := h.authUC.FirebaseLogin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		Debug("Firebase login reconciled", slog.String("outcome", output.Outcome))

	return response.Success(c, http.StatusOK, newAuthResponse(output))
}
