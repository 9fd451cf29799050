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

func newDispatcher(t *testing.T) (*Dispatcher, *MockProductMappingRepository, *MockVariantMappingRepository, *MockOrderMappingRepository, *MockShopifyGateway, *MockWooCommerceGateway) {
	t.Helper()
	productMappings := new(MockProductMappingRepository)
	variantMappings := new(MockVariantMappingRepository)
	orderMappings := new(MockOrderMappingRepository)
	shopify := new(MockShopifyGateway)
	woo := new(MockWooCommerceGateway)

	products := NewProductService(productMappings, variantMappings, shopify, woo, zap.NewNop())
	orders := NewOrderService(orderMappings, productMappings, variantMappings, shopify, zap.NewNop())
	return NewDispatcher(products, orders, zap.NewNop()), productMappings, variantMappings, orderMappings, shopify, woo
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("routes product.deleted", func(t *testing.T) {
		d, productMappings, variantMappings, _, shopify, _ := newDispatcher(t)

		mapping, _ := sync.NewProductMapping("742", "gid://shopify/Product/9001")
		productMappings.On("FindByWooID", ctx, "742").Return(mapping, nil)
		shopify.On("DeleteProduct", ctx, testSession(), "gid://shopify/Product/9001").
			Return("gid://shopify/Product/9001", nil)
		variantMappings.On("DeleteByProductMapping", ctx, mapping.ID).Return(nil)
		productMappings.On("DeleteByWooID", ctx, "742").Return(nil)

		result := d.Dispatch(ctx, testSession(), sync.EventProductDeleted, []byte(`{"id":742}`))

		assert.True(t, result.Success)
		shopify.AssertExpectations(t)
	})

	t.Run("routes order.updated", func(t *testing.T) {
		d, _, _, orderMappings, shopify, _ := newDispatcher(t)

		mapping, _ := sync.NewOrderMapping("311", "gid://shopify/Order/5005")
		orderMappings.On("FindByWooID", ctx, "311").Return(mapping, nil)
		shopify.On("MarkOrderAsPaid", ctx, testSession(), "gid://shopify/Order/5005").Return(nil)

		result := d.Dispatch(ctx, testSession(), sync.EventOrderUpdated,
			[]byte(`{"id":311,"status":"completed"}`))

		assert.True(t, result.Success)
	})

	t.Run("malformed product payload", func(t *testing.T) {
		d, productMappings, _, _, _, _ := newDispatcher(t)

		result := d.Dispatch(ctx, testSession(), sync.EventProductCreated, []byte(`{"id":`))

		require.NotNil(t, result.Err)
		assert.Equal(t, "Invalid product payload", result.Err.Message)
		productMappings.AssertNotCalled(t, "ExistsByWooID", mock.Anything, mock.Anything)
	})

	t.Run("product payload missing id", func(t *testing.T) {
		d, _, _, _, _, _ := newDispatcher(t)

		result := d.Dispatch(ctx, testSession(), sync.EventProductCreated, []byte(`{"name":"Linen Shirt"}`))

		require.NotNil(t, result.Err)
		assert.Equal(t, "Invalid product payload", result.Err.Message)
	})

	t.Run("malformed order payload", func(t *testing.T) {
		d, _, _, orderMappings, _, _ := newDispatcher(t)

		result := d.Dispatch(ctx, testSession(), sync.EventOrderCreated, []byte(`not json`))

		require.NotNil(t, result.Err)
		assert.Equal(t, "Invalid order payload", result.Err.Message)
		orderMappings.AssertNotCalled(t, "FindByWooID", mock.Anything, mock.Anything)
	})

	t.Run("unhandled topic", func(t *testing.T) {
		d, _, _, _, _, _ := newDispatcher(t)

		result := d.Dispatch(ctx, testSession(), sync.EventKind("customer.created"), []byte(`{}`))

		assert.False(t, result.Success)
		assert.Nil(t, result.Err)
		assert.Equal(t, "Unhandled event", result.Message)
	})

	t.Run("handler panic is contained", func(t *testing.T) {
		d, productMappings, _, _, _, _ := newDispatcher(t)

		productMappings.On("ExistsByWooID", ctx, "742").
			Panic("mapping store gone")

		result := d.Dispatch(ctx, testSession(), sync.EventProductCreated,
			[]byte(`{"id":742,"name":"Linen Shirt"}`))

		require.NotNil(t, result.Err)
		assert.Equal(t, "Internal handler error", result.Err.Message)
	})
}
