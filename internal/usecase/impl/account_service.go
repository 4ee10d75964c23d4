package impl

import (
	"context"
	"log/slog"

	deliverycontext "vyapkart/internal/delivery/context"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"
	"vyapkart/internal/errors"
	"vyapkart/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo repository.AccountRepository
	sellerRepo  repository.SellerRepository
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	SellerRepo  repository.SellerRepository
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo: params.AccountRepo,
		sellerRepo:  params.SellerRepo,
		logger:      params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile loads the account behind a session together with its seller profile, if any.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.AccountProfile, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrNotFound.WrapMessage("account not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}
	if !account.IsActive() {
		return nil, domainerrors.ErrAccountBlocked.WrapMessage("account status " + account.Status.String())
	}

	profile := &usecase.AccountProfile{Account: account}
	if !account.Roles.Contains(entity.RoleSeller) {
		return profile, nil
	}

	seller, err := srv.sellerRepo.FindByAccountID(ctx, accountID)
	switch {
	case errors.Is(err, repository.ErrSellerProfileNotFound):
		srv.log(ctx).Warn("Seller account has no seller profile", slog.String("accountID", accountID.String()))
	case err != nil:
		return nil, errors.Wrap(err, "failed to find seller profile")
	default:
		profile.Seller = seller
	}

	return profile, nil
}
