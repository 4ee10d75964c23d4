package handler

import (
	"log/slog"
	"net/http"
	"time"

	"vyapkart/internal/delivery/api/response"
	deliverycontext "vyapkart/internal/delivery/context"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/errors"
	"vyapkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AccountHandler serves the authenticated caller's own account.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler.
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// SellerProfileResponse is the seller section of the account view.
type SellerProfileResponse struct {
	BusinessName   string     `json:"businessName"`
	TaxID          string     `json:"taxId,omitempty"`
	Status         string     `json:"status"`
	OnboardedAt    *time.Time `json:"onboardedAt,omitempty"`
	RejectedReason string     `json:"rejectedReason,omitempty"`
}

// AccountResponse is the body of GET /accounts/me.
type AccountResponse struct {
	ID        uuid.UUID              `json:"id"`
	Email     string                 `json:"email"`
	FullName  string                 `json:"fullName"`
	Phone     string                 `json:"phone"`
	Status    string                 `json:"status"`
	Roles     []string               `json:"roles"`
	Seller    *SellerProfileResponse `json:"seller,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// GetMe returns the caller's current account, read from storage rather than the credential.
func (h *AccountHandler) GetMe(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	profile, err := h.accountUC.GetProfile(c.Request().Context(), principal.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	account := profile.Account
	resp := &AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Phone:     account.Phone,
		Status:    account.Status.String(),
		Roles:     account.Roles.ToStrings(),
		CreatedAt: account.CreatedAt,
	}
	if profile.Seller != nil {
		resp.Seller = newSellerProfileResponse(profile.Seller)
	}

	return response.Success(c, http.StatusOK, resp)
}

// GetMySellerProfile returns the caller's seller onboarding state. The route is restricted to sellers.
func (h *AccountHandler) GetMySellerProfile(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	profile, err := h.accountUC.GetProfile(c.Request().Context(), principal.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}
	if profile.Seller == nil {
		return errors.WithStack(domainerrors.ErrNotFound.WithDetails("seller profile"))
	}

	return response.Success(c, http.StatusOK, newSellerProfileResponse(profile.Seller))
}

func newSellerProfileResponse(seller *entity.SellerProfile) *SellerProfileResponse {
	return &SellerProfileResponse{
		BusinessName:   seller.BusinessName,
		TaxID:          seller.TaxID,
		Status:         string(seller.Status),
		OnboardedAt:    seller.OnboardedAt,
		RejectedReason: seller.RejectedReason,
	}
}
