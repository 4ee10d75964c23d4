package impl

import (
	"context"
	"strings"
	"testing"

	"vyapkart/config"
	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"
	"vyapkart/internal/errors"
	mockRepo "vyapkart/internal/mocks/repository"
	"vyapkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProvisioner(t *testing.T) usecase.Provisioner {
	t.Helper()

	p, err := NewProvisioner(newTestConfig())
	require.NoError(t, err)

	return p
}

func TestNewProvisioner_RejectsBadPattern(t *testing.T) {
	_, err := NewProvisioner(&config.Config{Seller: &config.SellerConfig{TaxIDPattern: "([", BusinessNameMaxLength: 10}})
	require.Error(t, err)

	_, err = NewProvisioner(&config.Config{})
	require.Error(t, err)
}

func TestProvisioner_ValidateRole(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		setupMock func(m *mockRepo.MockRoleRepository)
		want      entity.RoleName
		wantErr   error
	}{
		{
			name:  "lower case buyer",
			input: "buyer",
			setupMock: func(m *mockRepo.MockRoleRepository) {
				m.EXPECT().FindByName(mock.Anything, entity.RoleBuyer).Return(&entity.Role{ID: 1, Name: entity.RoleBuyer}, nil).Once()
			},
			want: entity.RoleBuyer,
		},
		{
			name:  "padded seller",
			input: "  Seller ",
			setupMock: func(m *mockRepo.MockRoleRepository) {
				m.EXPECT().FindByName(mock.Anything, entity.RoleSeller).Return(&entity.Role{ID: 2, Name: entity.RoleSeller}, nil).Once()
			},
			want: entity.RoleSeller,
		},
		{name: "empty", input: "", wantErr: domainerrors.ErrInvalidRole},
		{name: "blank", input: "   ", wantErr: domainerrors.ErrInvalidRole},
		{name: "admin", input: "admin", wantErr: domainerrors.ErrInvalidRole},
		{
			name:  "not in catalog",
			input: "courier",
			setupMock: func(m *mockRepo.MockRoleRepository) {
				m.EXPECT().FindByName(mock.Anything, entity.RoleName("COURIER")).Return(nil, repository.ErrRoleNotFound).Once()
			},
			wantErr: domainerrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roleRepo := mockRepo.NewMockRoleRepository(t)
			if tt.setupMock != nil {
				tt.setupMock(roleRepo)
			}

			role, err := newTestProvisioner(t).ValidateRole(context.Background(), roleRepo, tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, role)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, role.Name)
		})
	}
}

func TestProvisioner_ValidateRole_StorageError(t *testing.T) {
	roleRepo := mockRepo.NewMockRoleRepository(t)
	roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleBuyer).Return(nil, errors.New("connection reset")).Once()

	_, err := newTestProvisioner(t).ValidateRole(context.Background(), roleRepo, "BUYER")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidRole))
}

func TestProvisioner_ValidateSellerFields(t *testing.T) {
	tests := []struct {
		name         string
		businessName string
		taxID        string
		wantErr      bool
	}{
		{name: "valid without tax id", businessName: "Shah Textiles"},
		{name: "valid with tax id", businessName: "Shah Textiles", taxID: "29AAACR5055K1Z5"},
		{name: "tax id with surrounding spaces", businessName: "Shah Textiles", taxID: " 29AAACR5055K1Z5 "},
		{name: "255 characters", businessName: strings.Repeat("b", 255)},
		{name: "empty name", businessName: "", wantErr: true},
		{name: "256 characters", businessName: strings.Repeat("b", 256), wantErr: true},
		{name: "tax id too short", businessName: "Shah Textiles", taxID: "29AAACR5055", wantErr: true},
		{name: "tax id wrong shape", businessName: "Shah Textiles", taxID: "AAACR5055K1Z529", wantErr: true},
	}

	p := newTestProvisioner(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidateSellerFields(tt.businessName, tt.taxID)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerrors.ErrInvalidSellerData))

				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProvisioner_Provision(t *testing.T) {
	accountID := uuid.New()
	account := &entity.Account{ID: accountID, Email: "vikram@example.com"}

	t.Run("buyer gets role only", func(t *testing.T) {
		roleRepo := mockRepo.NewMockRoleRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.EXPECT().NewRoleRepository().Return(roleRepo).Once()

		roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleBuyer).Return(&entity.Role{ID: 1, Name: entity.RoleBuyer}, nil).Once()
		roleRepo.EXPECT().AssignRole(mock.Anything, accountID, int64(1)).Return(nil).Once()
		roleRepo.EXPECT().ListByAccountID(mock.Anything, accountID).Return(entity.Roles{entity.RoleBuyer}, nil).Once()

		result, err := newTestProvisioner(t).Provision(context.Background(), factory, account, buyerPayload())
		require.NoError(t, err)
		assert.Equal(t, entity.Roles{entity.RoleBuyer}, result.Roles)
		assert.Nil(t, result.SellerProfile)
	})

	t.Run("seller gets pending profile", func(t *testing.T) {
		roleRepo := mockRepo.NewMockRoleRepository(t)
		sellerRepo := mockRepo.NewMockSellerRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.EXPECT().NewRoleRepository().Return(roleRepo).Once()
		factory.EXPECT().NewSellerRepository().Return(sellerRepo).Once()

		roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleSeller).Return(&entity.Role{ID: 2, Name: entity.RoleSeller}, nil).Once()
		roleRepo.EXPECT().AssignRole(mock.Anything, accountID, int64(2)).Return(nil).Once()
		sellerRepo.EXPECT().ExistsByAccountID(mock.Anything, accountID).Return(false, nil).Once()
		sellerRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(p *entity.SellerProfile) bool {
			return p.AccountID == accountID &&
				p.BusinessName == "Shah Textiles" &&
				p.TaxID == "27ABCDE1234F1Z5" &&
				p.Status == entity.SellerStatusPending
		})).Return(nil).Once()
		roleRepo.EXPECT().ListByAccountID(mock.Anything, accountID).Return(entity.Roles{entity.RoleSeller}, nil).Once()

		result, err := newTestProvisioner(t).Provision(context.Background(), factory, account, sellerPayload())
		require.NoError(t, err)
		assert.Equal(t, entity.Roles{entity.RoleSeller}, result.Roles)
		require.NotNil(t, result.SellerProfile)
		assert.Equal(t, entity.SellerStatusPending, result.SellerProfile.Status)
	})

	t.Run("existing seller profile is kept", func(t *testing.T) {
		roleRepo := mockRepo.NewMockRoleRepository(t)
		sellerRepo := mockRepo.NewMockSellerRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.EXPECT().NewRoleRepository().Return(roleRepo).Once()
		factory.EXPECT().NewSellerRepository().Return(sellerRepo).Once()

		roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleSeller).Return(&entity.Role{ID: 2, Name: entity.RoleSeller}, nil).Once()
		roleRepo.EXPECT().AssignRole(mock.Anything, accountID, int64(2)).Return(nil).Once()
		sellerRepo.EXPECT().ExistsByAccountID(mock.Anything, accountID).Return(true, nil).Once()
		roleRepo.EXPECT().ListByAccountID(mock.Anything, accountID).Return(entity.Roles{entity.RoleSeller}, nil).Once()

		result, err := newTestProvisioner(t).Provision(context.Background(), factory, account, sellerPayload())
		require.NoError(t, err)
		assert.Nil(t, result.SellerProfile)
	})

	t.Run("assignment conflict propagates", func(t *testing.T) {
		roleRepo := mockRepo.NewMockRoleRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.EXPECT().NewRoleRepository().Return(roleRepo).Once()

		roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleBuyer).Return(&entity.Role{ID: 1, Name: entity.RoleBuyer}, nil).Once()
		roleRepo.EXPECT().AssignRole(mock.Anything, accountID, int64(1)).
			Return(domainerrors.ErrStorageConflict.WrapMessage("account vanished")).Once()

		_, err := newTestProvisioner(t).Provision(context.Background(), factory, account, buyerPayload())
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrStorageConflict))
	})

	t.Run("invalid seller data writes nothing", func(t *testing.T) {
		roleRepo := mockRepo.NewMockRoleRepository(t)
		factory := mockRepo.NewMockRepositoryFactory(t)
		factory.EXPECT().NewRoleRepository().Return(roleRepo).Once()

		roleRepo.EXPECT().FindByName(mock.Anything, entity.RoleSeller).Return(&entity.Role{ID: 2, Name: entity.RoleSeller}, nil).Once()

		payload := sellerPayload()
		payload.TaxID = "nope"

		_, err := newTestProvisioner(t).Provision(context.Background(), factory, account, payload)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidSellerData))
	})
}
