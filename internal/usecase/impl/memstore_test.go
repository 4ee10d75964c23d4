package impl

import (
	"context"
	"slices"
	"sync"
	"time"

	"vyapkart/internal/domain/entity"
	domainerrors "vyapkart/internal/domain/errors"
	"vyapkart/internal/domain/repository"

	"github.com/google/uuid"
)

// memState is one version of the tables the reconciliation engine touches.
type memState struct {
	accounts    map[uuid.UUID]*entity.Account
	roles       map[entity.RoleName]*entity.Role
	assignments map[uuid.UUID][]int64
	sellers     map[uuid.UUID]*entity.SellerProfile
}

func newMemState() *memState {
	return &memState{
		accounts:    make(map[uuid.UUID]*entity.Account),
		roles:       make(map[entity.RoleName]*entity.Role),
		assignments: make(map[uuid.UUID][]int64),
		sellers:     make(map[uuid.UUID]*entity.SellerProfile),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for id, a := range s.accounts {
		copied := *a
		c.accounts[id] = &copied
	}
	for name, r := range s.roles {
		copied := *r
		c.roles[name] = &copied
	}
	for id, ids := range s.assignments {
		c.assignments[id] = slices.Clone(ids)
	}
	for id, p := range s.sellers {
		copied := *p
		c.sellers[id] = &copied
	}

	return c
}

func (s *memState) rolesOf(accountID uuid.UUID) entity.Roles {
	var roles entity.Roles
	for _, roleID := range s.assignments[accountID] {
		for _, r := range s.roles {
			if r.ID == roleID {
				roles = append(roles, r.Name)
			}
		}
	}

	return roles
}

func (s *memState) withRoles(a *entity.Account) *entity.Account {
	copied := *a
	copied.Roles = s.rolesOf(a.ID)

	return &copied
}

// memOp is a write statement. It runs once against the transaction's snapshot and is replayed
// against the committed state at commit, where unique constraints are checked again.
type memOp func(s *memState) error

// memStore is an in-memory database with unique indexes on accounts.email,
// accounts.external_id, account_roles(account_id, role_id) and seller_profiles.account_id.
// Transactions see a snapshot taken at begin and commit optimistically, so two concurrent
// transactions inserting the same key make the later one fail with a storage conflict.
type memStore struct {
	mu        sync.Mutex
	committed *memState

	// afterSnapshot runs once per transaction after its snapshot is taken.
	afterSnapshot func(attempt int)
	attempts      int

	// conflictingCommits makes that many commits fail as if a unique index rejected them.
	conflictingCommits int
}

func newMemStore() *memStore {
	store := &memStore{committed: newMemState()}
	for i, name := range entity.DefaultRoleCatalog {
		store.committed.roles[name] = &entity.Role{ID: int64(i + 1), Name: name}
	}

	return store
}

// seedAccount commits an account directly and returns its stored copy.
func (m *memStore) seedAccount(account *entity.Account, roles ...entity.RoleName) *entity.Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.Status == "" {
		account.Status = entity.AccountStatusActive
	}
	copied := *account
	copied.Roles = nil
	m.committed.accounts[account.ID] = &copied
	for _, name := range roles {
		m.committed.assignments[account.ID] = append(m.committed.assignments[account.ID], m.committed.roles[name].ID)
	}

	return m.committed.withRoles(&copied)
}

func (m *memStore) seedSeller(profile *entity.SellerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	copied := *profile
	m.committed.sellers[profile.AccountID] = &copied
}

func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.committed.clone()
}

func (m *memStore) accountCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.committed.accounts)
}

func (m *memStore) sellerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.committed.sellers)
}

func (m *memStore) accountByEmail(email string) *entity.Account {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.committed.accounts {
		if a.Email == email {
			return m.committed.withRoles(a)
		}
	}

	return nil
}

func (m *memStore) sellerOf(accountID uuid.UUID) *entity.SellerProfile {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.committed.sellers[accountID]
	if !ok {
		return nil
	}
	copied := *p

	return &copied
}

// Execute implements repository.TransactionManager.
func (m *memStore) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	tx := &memTx{store: m, working: m.snapshot()}

	m.mu.Lock()
	m.attempts++
	attempt := m.attempts
	hook := m.afterSnapshot
	m.mu.Unlock()
	if hook != nil {
		hook(attempt)
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.commit(tx.log)
}

func (m *memStore) commit(log []memOp) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflictingCommits > 0 {
		m.conflictingCommits--

		return domainerrors.ErrStorageConflict.WrapMessage("injected conflict")
	}

	next := m.committed.clone()
	for _, op := range log {
		if err := op(next); err != nil {
			return err
		}
	}
	m.committed = next

	return nil
}

// autocommit applies a single statement outside any transaction.
func (m *memStore) autocommit(op memOp) error {
	return m.commit([]memOp{op})
}

func (m *memStore) read(fn func(s *memState)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(m.committed)
}

// memTx is a transaction-bound RepositoryFactory.
type memTx struct {
	store   *memStore
	working *memState
	log     []memOp
}

func (tx *memTx) NewAccountRepository() repository.AccountRepository {
	return &memAccountRepo{store: tx.store, tx: tx}
}

func (tx *memTx) NewRoleRepository() repository.RoleRepository {
	return &memRoleRepo{store: tx.store, tx: tx}
}

func (tx *memTx) NewSellerRepository() repository.SellerRepository {
	return &memSellerRepo{store: tx.store, tx: tx}
}

func (tx *memTx) exec(op memOp) error {
	if err := op(tx.working); err != nil {
		return err
	}
	tx.log = append(tx.log, op)

	return nil
}

// memAccess routes reads and writes to the transaction snapshot, or to the committed
// state when no transaction is bound.
type memAccess struct {
	store *memStore
	tx    *memTx
}

func (a memAccess) read(fn func(s *memState)) {
	if a.tx != nil {
		fn(a.tx.working)

		return
	}
	a.store.read(fn)
}

func (a memAccess) exec(op memOp) error {
	if a.tx != nil {
		return a.tx.exec(op)
	}

	return a.store.autocommit(op)
}

type memAccountRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memAccountRepo) access() memAccess { return memAccess{store: r.store, tx: r.tx} }

func (r *memAccountRepo) find(match func(a *entity.Account) bool) (*entity.Account, error) {
	var found *entity.Account
	r.access().read(func(s *memState) {
		for _, a := range s.accounts {
			if match(a) {
				found = s.withRoles(a)

				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrAccountNotFound
	}

	return found, nil
}

func (r *memAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.ID == id })
}

func (r *memAccountRepo) FindByExternalID(_ context.Context, externalID string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.ExternalID != "" && a.ExternalID == externalID })
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.Email == email })
}

func (r *memAccountRepo) Create(_ context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	row := *account
	row.Roles = nil

	return r.access().exec(func(s *memState) error {
		for _, a := range s.accounts {
			if a.Email == row.Email || (row.ExternalID != "" && a.ExternalID == row.ExternalID) {
				return domainerrors.ErrStorageConflict.WrapMessage("duplicate account")
			}
		}
		copied := row
		s.accounts[row.ID] = &copied

		return nil
	})
}

func (r *memAccountRepo) LinkExternalID(_ context.Context, id uuid.UUID, externalID, fullName, phone string) error {
	return r.access().exec(func(s *memState) error {
		for _, a := range s.accounts {
			if a.ExternalID == externalID {
				return domainerrors.ErrStorageConflict.WrapMessage("external id already linked")
			}
		}
		a, ok := s.accounts[id]
		if !ok || a.ExternalID != "" {
			return domainerrors.ErrStorageConflict.WrapMessage("account was linked concurrently")
		}
		a.ExternalID = externalID
		if fullName != "" {
			a.FullName = fullName
		}
		if phone != "" {
			a.Phone = phone
		}

		return nil
	})
}

type memRoleRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memRoleRepo) access() memAccess { return memAccess{store: r.store, tx: r.tx} }

func (r *memRoleRepo) FindByName(_ context.Context, name entity.RoleName) (*entity.Role, error) {
	var found *entity.Role
	r.access().read(func(s *memState) {
		if role, ok := s.roles[name]; ok {
			copied := *role
			found = &copied
		}
	})
	if found == nil {
		return nil, repository.ErrRoleNotFound
	}

	return found, nil
}

func (r *memRoleRepo) AssignRole(_ context.Context, accountID uuid.UUID, roleID int64) error {
	return r.access().exec(func(s *memState) error {
		if _, ok := s.accounts[accountID]; !ok {
			return domainerrors.ErrStorageConflict.WrapMessage("account does not exist")
		}
		if slices.Contains(s.assignments[accountID], roleID) {
			return nil
		}
		s.assignments[accountID] = append(s.assignments[accountID], roleID)

		return nil
	})
}

func (r *memRoleRepo) ListByAccountID(_ context.Context, accountID uuid.UUID) (entity.Roles, error) {
	var roles entity.Roles
	r.access().read(func(s *memState) {
		roles = s.rolesOf(accountID)
	})

	return roles, nil
}

type memSellerRepo struct {
	store *memStore
	tx    *memTx
}

func (r *memSellerRepo) access() memAccess { return memAccess{store: r.store, tx: r.tx} }

func (r *memSellerRepo) ExistsByAccountID(_ context.Context, accountID uuid.UUID) (bool, error) {
	var exists bool
	r.access().read(func(s *memState) {
		_, exists = s.sellers[accountID]
	})

	return exists, nil
}

func (r *memSellerRepo) Create(_ context.Context, profile *entity.SellerProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	row := *profile

	return r.access().exec(func(s *memState) error {
		if _, ok := s.sellers[row.AccountID]; ok {
			return domainerrors.ErrStorageConflict.WrapMessage("seller profile already exists")
		}
		copied := row
		s.sellers[row.AccountID] = &copied

		return nil
	})
}

func (r *memSellerRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.SellerProfile, error) {
	var found *entity.SellerProfile
	r.access().read(func(s *memState) {
		if p, ok := s.sellers[accountID]; ok {
			copied := *p
			found = &copied
		}
	})
	if found == nil {
		return nil, repository.ErrSellerProfileNotFound
	}

	return found, nil
}
