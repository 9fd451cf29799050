package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/sync"
)

func newOrderService(t *testing.T) (*OrderService, *MockOrderMappingRepository, *MockProductMappingRepository, *MockVariantMappingRepository, *MockShopifyGateway) {
	t.Helper()
	orders := new(MockOrderMappingRepository)
	products := new(MockProductMappingRepository)
	variants := new(MockVariantMappingRepository)
	shopify := new(MockShopifyGateway)
	return NewOrderService(orders, products, variants, shopify, zap.NewNop()), orders, products, variants, shopify
}

func wooOrder(status string) *sync.WooOrder {
	return &sync.WooOrder{
		ID:       "311",
		Status:   status,
		Currency: "USD",
		Total:    "85.00",
		Billing:  sync.WooAddress{FirstName: "Ada", Email: "buyer@example.com"},
		LineItems: []sync.WooLineItem{
			{Name: "Linen Shirt", Quantity: 2, ProductID: "742"},
		},
	}
}

func TestHandleOrderCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("creates order with resolved variant and persists mapping", func(t *testing.T) {
		svc, orders, products, variants, shopify := newOrderService(t)

		orders.On("FindByWooID", ctx, "311").Return(nil, sync.ErrMappingNotFound)

		productMapping, _ := sync.NewProductMapping("742", "gid://shopify/Product/9001")
		products.On("FindByWooID", ctx, "742").Return(productMapping, nil)
		variants.On("FindByProductMapping", ctx, productMapping.ID).
			Return([]sync.VariantMapping{}, nil)
		shopify.On("GetProductVariants", ctx, testSession(), "gid://shopify/Product/9001").
			Return([]sync.ShopifyVariant{
				{ID: "gid://shopify/ProductVariant/7007", Title: "M"},
				{ID: "gid://shopify/ProductVariant/7008", Title: "L"},
			}, nil)

		shopify.On("CreateOrder", ctx, testSession(), mock.MatchedBy(func(in sync.ShopifyOrderInput) bool {
			return len(in.LineItems) == 1 &&
				in.LineItems[0].VariantID == "gid://shopify/ProductVariant/7007" &&
				in.Email == "buyer@example.com"
		})).Return(&sync.ShopifyOrder{ID: "gid://shopify/Order/5005"}, nil)

		orders.On("Create", ctx, mock.MatchedBy(func(m *sync.OrderMapping) bool {
			return m.WooOrderID == "311" && m.ShopifyOrderID == "gid://shopify/Order/5005"
		})).Return(nil)

		result := svc.HandleOrderCreated(ctx, testSession(), wooOrder("pending"))

		assert.True(t, result.Success)
		orders.AssertExpectations(t)
	})

	t.Run("stored variant mapping short-circuits the remote lookup", func(t *testing.T) {
		svc, orders, products, variants, shopify := newOrderService(t)

		orders.On("FindByWooID", ctx, "311").Return(nil, sync.ErrMappingNotFound)

		productMapping, _ := sync.NewProductMapping("742", "gid://shopify/Product/9001")
		products.On("FindByWooID", ctx, "742").Return(productMapping, nil)

		stored, _ := sync.NewVariantMapping("742", "gid://shopify/ProductVariant/7007", productMapping.ID)
		variants.On("FindByProductMapping", ctx, productMapping.ID).
			Return([]sync.VariantMapping{*stored}, nil)

		shopify.On("CreateOrder", ctx, testSession(), mock.MatchedBy(func(in sync.ShopifyOrderInput) bool {
			return len(in.LineItems) == 1 &&
				in.LineItems[0].VariantID == "gid://shopify/ProductVariant/7007"
		})).Return(&sync.ShopifyOrder{ID: "gid://shopify/Order/5005"}, nil)
		orders.On("Create", ctx, mock.Anything).Return(nil)

		result := svc.HandleOrderCreated(ctx, testSession(), wooOrder("pending"))

		assert.True(t, result.Success)
		shopify.AssertNotCalled(t, "GetProductVariants", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unresolvable line carried without variant", func(t *testing.T) {
		svc, orders, products, _, shopify := newOrderService(t)

		orders.On("FindByWooID", ctx, "311").Return(nil, sync.ErrMappingNotFound)
		products.On("FindByWooID", ctx, "742").Return(nil, sync.ErrMappingNotFound)

		shopify.On("CreateOrder", ctx, testSession(), mock.MatchedBy(func(in sync.ShopifyOrderInput) bool {
			return len(in.LineItems) == 1 && in.LineItems[0].VariantID == ""
		})).Return(&sync.ShopifyOrder{ID: "gid://shopify/Order/5005"}, nil)
		orders.On("Create", ctx, mock.Anything).Return(nil)

		result := svc.HandleOrderCreated(ctx, testSession(), wooOrder("pending"))

		assert.True(t, result.Success)
	})

	t.Run("duplicate delivery skips", func(t *testing.T) {
		svc, orders, _, _, shopify := newOrderService(t)

		existing, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orders.On("FindByWooID", ctx, "311").Return(existing, nil)

		result := svc.HandleOrderCreated(ctx, testSession(), wooOrder("pending"))

		assert.False(t, result.Success)
		assert.Nil(t, result.Err)
		shopify.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("insert race rolls back duplicate order", func(t *testing.T) {
		svc, orders, products, _, shopify := newOrderService(t)

		orders.On("FindByWooID", ctx, "311").Return(nil, sync.ErrMappingNotFound)
		products.On("FindByWooID", ctx, "742").Return(nil, sync.ErrMappingNotFound)
		shopify.On("CreateOrder", ctx, testSession(), mock.Anything).
			Return(&sync.ShopifyOrder{ID: "gid://shopify/Order/5006"}, nil)
		orders.On("Create", ctx, mock.Anything).Return(sync.ErrMappingAlreadyExists)
		shopify.On("DeleteOrder", ctx, testSession(), "gid://shopify/Order/5006").Return(nil)

		result := svc.HandleOrderCreated(ctx, testSession(), wooOrder("pending"))

		assert.False(t, result.Success)
		assert.Nil(t, result.Err)
		shopify.AssertCalled(t, "DeleteOrder", ctx, testSession(), "gid://shopify/Order/5006")
	})
}

func TestHandleOrderUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("completed marks order paid", func(t *testing.T) {
		svc, orders, _, _, shopify := newOrderService(t)

		mapping, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orders.On("FindByWooID", ctx, "311").Return(mapping, nil)
		shopify.On("MarkOrderAsPaid", ctx, testSession(), "gid://shopify/Order/5005").Return(nil)

		result := svc.HandleOrderUpdated(ctx, testSession(), wooOrder("completed"))

		assert.True(t, result.Success)
	})

	t.Run("processing marks order paid", func(t *testing.T) {
		svc, orders, _, _, shopify := newOrderService(t)

		mapping, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orders.On("FindByWooID", ctx, "311").Return(mapping, nil)
		shopify.On("MarkOrderAsPaid", ctx, testSession(), "gid://shopify/Order/5005").Return(nil)

		result := svc.HandleOrderUpdated(ctx, testSession(), wooOrder("processing"))

		assert.True(t, result.Success)
	})

	t.Run("other statuses need no action", func(t *testing.T) {
		svc, orders, _, _, shopify := newOrderService(t)

		mapping, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orders.On("FindByWooID", ctx, "311").Return(mapping, nil)

		result := svc.HandleOrderUpdated(ctx, testSession(), wooOrder("on-hold"))

		assert.False(t, result.Success)
		assert.Nil(t, result.Err)
		shopify.AssertNotCalled(t, "MarkOrderAsPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unmapped order", func(t *testing.T) {
		svc, orders, _, _, _ := newOrderService(t)

		orders.On("FindByWooID", ctx, "311").Return(nil, sync.ErrMappingNotFound)

		result := svc.HandleOrderUpdated(ctx, testSession(), wooOrder("completed"))

		require.NotNil(t, result.Err)
		assert.Equal(t, "Order mapping not found", result.Err.Message)
	})
}

func TestHandleOrderDeleted(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes order then mapping", func(t *testing.T) {
		svc, orders, _, _, shopify := newOrderService(t)

		mapping, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orders.On("FindByWooID", ctx, "311").Return(mapping, nil)
		shopify.On("DeleteOrder", ctx, testSession(), "gid://shopify/Order/5005").Return(nil)
		orders.On("DeleteByWooID", ctx, "311").Return(nil)

		result := svc.HandleOrderDeleted(ctx, testSession(), wooOrder("cancelled"))

		assert.True(t, result.Success)
		orders.AssertExpectations(t)
	})

	t.Run("mapping survives failed remote delete", func(t *testing.T) {
		svc, orders, _, _, shopify := newOrderService(t)

		mapping, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orders.On("FindByWooID", ctx, "311").Return(mapping, nil)
		shopify.On("DeleteOrder", ctx, testSession(), "gid://shopify/Order/5005").
			Return(sync.ErrPlatformUnavailable)

		result := svc.HandleOrderDeleted(ctx, testSession(), wooOrder("cancelled"))

		require.NotNil(t, result.Err)
		orders.AssertNotCalled(t, "DeleteByWooID", mock.Anything, mock.Anything)
	})
}
