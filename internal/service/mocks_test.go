package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type MockContractRepo struct{ mock.Mock }

func (m *MockContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContractRepo) GetByID(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContractRepo) NextNumberSeq(ctx context.Context, prefix string) (int32, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockContractRepo) CountOverlapping(ctx context.Context, vehicleID int64, startDate, endDate string, excludeContractID int64) (int64, error) {
	args := m.Called(ctx, vehicleID, startDate, endDate, excludeContractID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContractRepo) List(ctx context.Context, f repository.ContractFilter, page, pageSize int32) ([]domain.ContractListItem, int32, error) {
	args := m.Called(ctx, f, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.ContractListItem), args.Get(1).(int32), args.Error(2)
}

func (m *MockContractRepo) GetDetail(ctx context.Context, id int64) (*domain.ContractListItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractListItem), args.Error(1)
}

func (m *MockContractRepo) ListOverdue(ctx context.Context, asOf string) ([]domain.ContractListItem, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContractListItem), args.Error(1)
}

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPaymentRepo) SumByType(ctx context.Context, contractID int64, t domain.PaymentType) (decimal.Decimal, error) {
	args := m.Called(ctx, contractID, t)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepo) ListByContract(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockExtensionRepo struct{ mock.Mock }

func (m *MockExtensionRepo) Create(ctx context.Context, e *domain.Extension) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExtensionRepo) ListByContract(ctx context.Context, contractID int64) ([]domain.Extension, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Extension), args.Error(1)
}

type MockVehicleRepo struct{ mock.Mock }

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) SetStatus(ctx context.Context, id int64, status domain.VehicleStatus, currentContractID *int64) error {
	return m.Called(ctx, id, status, currentContractID).Error(0)
}

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockSettingsRepo struct{ mock.Mock }

func (m *MockSettingsRepo) DepositPercentage(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockAuditRepo struct{ mock.Mock }

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	return m.Called(ctx, entry).Error(0)
}

// mockStore satisfies repository.Store. WithinTx simply runs fn against the
// same repository set, so service tests exercise the real transaction bodies.
type mockStore struct {
	contracts  *MockContractRepo
	payments   *MockPaymentRepo
	extensions *MockExtensionRepo
	vehicles   *MockVehicleRepo
	customers  *MockCustomerRepo
	settings   *MockSettingsRepo
	audit      *MockAuditRepo
}

func newMockStore() *mockStore {
	s := &mockStore{
		contracts:  new(MockContractRepo),
		payments:   new(MockPaymentRepo),
		extensions: new(MockExtensionRepo),
		vehicles:   new(MockVehicleRepo),
		customers:  new(MockCustomerRepo),
		settings:   new(MockSettingsRepo),
		audit:      new(MockAuditRepo),
	}
	// Audit writes are fire-and-forget; most tests don't care about them.
	s.audit.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	return s
}

func (s *mockStore) Contracts() repository.ContractRepository { return s.contracts }
func (s *mockStore) Payments() repository.PaymentRepository { return s.payments }
func (s *mockStore) Extensions() repository.ExtensionRepository { return s.extensions }
func (s *mockStore) Vehicles() repository.VehicleRepository { return s.vehicles }
func (s *mockStore) Customers() repository.CustomerRepository { return s.customers }
func (s *mockStore) Settings() repository.SettingsRepository { return s.settings }
func (s *mockStore) Audit() repository.AuditRepository { return s.audit }

func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.UnitOfWork) error) error {
	return fn(s)
}

// recordingNotifier counts lifecycle hook calls.
type recordingNotifier struct {
	mu    sync.Mutex
	calls map[string]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{calls: map[string]int{}}
}

func (n *recordingNotifier) record(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls[name]++
}

func (n *recordingNotifier) count(name string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[name]
}

func (n *recordingNotifier) ContractCreated(ctx context.Context, c *domain.Contract) { n.record("created") }
func (n *recordingNotifier) ContractConfirmed(ctx context.Context, c *domain.Contract) { n.record("confirmed") }
func (n *recordingNotifier) ContractActivated(ctx context.Context, c *domain.Contract) { n.record("activated") }
func (n *recordingNotifier) ContractCompleted(ctx context.Context, c *domain.Contract) { n.record("completed") }
func (n *recordingNotifier) ContractCancelled(ctx context.Context, c *domain.Contract) { n.record("cancelled") }
func (n *recordingNotifier) ContractExtended(ctx context.Context, c *domain.Contract, e *domain.Extension) {
	n.record("extended")
}
func (n *recordingNotifier) PaymentRecorded(ctx context.Context, p *domain.Payment) { n.record("payment") }
func (n *recordingNotifier) ContractOverdue(ctx context.Context, item *domain.ContractListItem) {
	n.record("overdue")
}
