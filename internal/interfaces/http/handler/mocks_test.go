package handler

import (
	"context"

	"github.com/esimhub/backend/internal/domain/catalog"
	"github.com/esimhub/backend/internal/domain/ordering"
	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProviderClient is a mock implementation of provider.Client
type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) FetchCatalog(ctx context.Context) ([]provider.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Package), args.Error(1)
}

func (m *MockProviderClient) Subscribe(ctx context.Context, req provider.SubscribeRequest) (*provider.Subscription, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Subscription), args.Error(1)
}

func (m *MockProviderClient) OrderDetails(ctx context.Context, orderID string) (*provider.OrderDetails, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.OrderDetails), args.Error(1)
}

func (m *MockProviderClient) QRCodes(ctx context.Context, orderID string) ([]string, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProviderClient) Usage(ctx context.Context, iccid string) (*provider.UsageReport, error) {
	args := m.Called(ctx, iccid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.UsageReport), args.Error(1)
}

func (m *MockProviderClient) CreateToken(ctx context.Context) (*provider.SessionToken, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SessionToken), args.Error(1)
}

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateMetadata(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockRegionRepository is a mock implementation of catalog.RegionRepository
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) FindByID(ctx context.Context, id string) (*catalog.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Region), args.Error(1)
}

func (m *MockRegionRepository) FindAll(ctx context.Context) ([]catalog.Region, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Region), args.Error(1)
}

func (m *MockRegionRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegionRepository) Save(ctx context.Context, region *catalog.Region) error {
	args := m.Called(ctx, region)
	return args.Error(0)
}

// MockCurrencyRepository is a mock implementation of catalog.CurrencyRepository
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindByCode(ctx context.Context, code string) (*catalog.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCurrencyRepository) Save(ctx context.Context, currency *catalog.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}
