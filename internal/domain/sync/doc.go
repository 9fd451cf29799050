// Package sync contains the domain model for the Shopify/WooCommerce
// synchronization bridge: the cross-platform ID mappings, the inbound
// webhook event model, and the gateway contracts the reconciliation
// services depend on.
//
// Mappings are identity records, not state machines: once a pair of
// platform IDs is linked the row never changes, it can only be deleted
// after the counterpart entity has been removed remotely.
package sync
