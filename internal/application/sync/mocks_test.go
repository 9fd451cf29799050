package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// MockProductMappingRepository is a mock implementation of sync.ProductMappingRepository
type MockProductMappingRepository struct {
	mock.Mock
}

func (m *MockProductMappingRepository) FindByWooID(ctx context.Context, wooProductID string) (*sync.ProductMapping, error) {
	args := m.Called(ctx, wooProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ProductMapping), args.Error(1)
}

func (m *MockProductMappingRepository) FindByShopifyID(ctx context.Context, shopifyProductID string) (*sync.ProductMapping, error) {
	args := m.Called(ctx, shopifyProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ProductMapping), args.Error(1)
}

func (m *MockProductMappingRepository) ExistsByWooID(ctx context.Context, wooProductID string) (bool, error) {
	args := m.Called(ctx, wooProductID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductMappingRepository) ExistsByShopifyID(ctx context.Context, shopifyProductID string) (bool, error) {
	args := m.Called(ctx, shopifyProductID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductMappingRepository) Create(ctx context.Context, mapping *sync.ProductMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockProductMappingRepository) DeleteByWooID(ctx context.Context, wooProductID string) error {
	args := m.Called(ctx, wooProductID)
	return args.Error(0)
}

func (m *MockProductMappingRepository) DeleteByShopifyID(ctx context.Context, shopifyProductID string) error {
	args := m.Called(ctx, shopifyProductID)
	return args.Error(0)
}

// MockOrderMappingRepository is a mock implementation of sync.OrderMappingRepository
type MockOrderMappingRepository struct {
	mock.Mock
}

func (m *MockOrderMappingRepository) FindByWooID(ctx context.Context, wooOrderID string) (*sync.OrderMapping, error) {
	args := m.Called(ctx, wooOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.OrderMapping), args.Error(1)
}

func (m *MockOrderMappingRepository) FindByShopifyID(ctx context.Context, shopifyOrderID string) (*sync.OrderMapping, error) {
	args := m.Called(ctx, shopifyOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.OrderMapping), args.Error(1)
}

func (m *MockOrderMappingRepository) Create(ctx context.Context, mapping *sync.OrderMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockOrderMappingRepository) DeleteByWooID(ctx context.Context, wooOrderID string) error {
	args := m.Called(ctx, wooOrderID)
	return args.Error(0)
}

// MockVariantMappingRepository is a mock implementation of sync.VariantMappingRepository
type MockVariantMappingRepository struct {
	mock.Mock
}

func (m *MockVariantMappingRepository) FindByWooID(ctx context.Context, wooVariantID string) (*sync.VariantMapping, error) {
	args := m.Called(ctx, wooVariantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.VariantMapping), args.Error(1)
}

func (m *MockVariantMappingRepository) FindByProductMapping(ctx context.Context, productMappingID uuid.UUID) ([]sync.VariantMapping, error) {
	args := m.Called(ctx, productMappingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.VariantMapping), args.Error(1)
}

func (m *MockVariantMappingRepository) Create(ctx context.Context, mapping *sync.VariantMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockVariantMappingRepository) DeleteByProductMapping(ctx context.Context, productMappingID uuid.UUID) error {
	args := m.Called(ctx, productMappingID)
	return args.Error(0)
}

// MockShopifyGateway is a mock implementation of sync.ShopifyGateway
type MockShopifyGateway struct {
	mock.Mock
}

func (m *MockShopifyGateway) CreateProduct(ctx context.Context, session *sync.ShopSession, input sync.ShopifyProductInput) (*sync.ShopifyProduct, error) {
	args := m.Called(ctx, session, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ShopifyProduct), args.Error(1)
}

func (m *MockShopifyGateway) CreateProductVariants(ctx context.Context, session *sync.ShopSession, productID string, variants []sync.ShopifyVariantInput) ([]sync.ShopifyVariant, error) {
	args := m.Called(ctx, session, productID, variants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.ShopifyVariant), args.Error(1)
}

func (m *MockShopifyGateway) AttachProductMedia(ctx context.Context, session *sync.ShopSession, productID string, media []sync.ShopifyMediaInput) error {
	args := m.Called(ctx, session, productID, media)
	return args.Error(0)
}

func (m *MockShopifyGateway) SetProductMetafields(ctx context.Context, session *sync.ShopSession, productID string, metafields []sync.ShopifyMetafieldInput) error {
	args := m.Called(ctx, session, productID, metafields)
	return args.Error(0)
}

func (m *MockShopifyGateway) UpdateProduct(ctx context.Context, session *sync.ShopSession, input sync.ShopifyProductInput, media []sync.ShopifyMediaInput) (*sync.ShopifyProduct, error) {
	args := m.Called(ctx, session, input, media)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ShopifyProduct), args.Error(1)
}

func (m *MockShopifyGateway) DeleteProduct(ctx context.Context, session *sync.ShopSession, productID string) (string, error) {
	args := m.Called(ctx, session, productID)
	return args.String(0), args.Error(1)
}

func (m *MockShopifyGateway) CreateOrder(ctx context.Context, session *sync.ShopSession, order sync.ShopifyOrderInput) (*sync.ShopifyOrder, error) {
	args := m.Called(ctx, session, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ShopifyOrder), args.Error(1)
}

func (m *MockShopifyGateway) DeleteOrder(ctx context.Context, session *sync.ShopSession, orderID string) error {
	args := m.Called(ctx, session, orderID)
	return args.Error(0)
}

func (m *MockShopifyGateway) MarkOrderAsPaid(ctx context.Context, session *sync.ShopSession, orderID string) error {
	args := m.Called(ctx, session, orderID)
	return args.Error(0)
}

func (m *MockShopifyGateway) GetOrderDetails(ctx context.Context, session *sync.ShopSession, orderID string) (*sync.ShopifyOrderDetails, error) {
	args := m.Called(ctx, session, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ShopifyOrderDetails), args.Error(1)
}

func (m *MockShopifyGateway) ListActiveProducts(ctx context.Context, session *sync.ShopSession) ([]sync.ShopifyActiveProduct, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.ShopifyActiveProduct), args.Error(1)
}

func (m *MockShopifyGateway) GetProductVariants(ctx context.Context, session *sync.ShopSession, productID string) ([]sync.ShopifyVariant, error) {
	args := m.Called(ctx, session, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sync.ShopifyVariant), args.Error(1)
}

// MockWooCommerceGateway is a mock implementation of sync.WooCommerceGateway
type MockWooCommerceGateway struct {
	mock.Mock
}

func (m *MockWooCommerceGateway) CreateProduct(ctx context.Context, product sync.WooProductCreate) (string, error) {
	args := m.Called(ctx, product)
	return args.String(0), args.Error(1)
}

func (m *MockWooCommerceGateway) DeleteProduct(ctx context.Context, wooProductID string) error {
	args := m.Called(ctx, wooProductID)
	return args.Error(0)
}

func (m *MockWooCommerceGateway) CreateOrder(ctx context.Context, order sync.WooOrderCreate) (*sync.WooOrderResult, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.WooOrderResult), args.Error(1)
}

func testSession() *sync.ShopSession {
	return &sync.ShopSession{
		Shop:        "demo.myshopify.com",
		AccessToken: "shpat_test_token",
	}
}
