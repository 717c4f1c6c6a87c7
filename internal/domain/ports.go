package domain

import "context"

// WarehouseRepository is the port for read-only warehouse lookups. Every
// method takes the request context so a canceled request stops querying.
type WarehouseRepository interface {
	// ExistsAsOriginal reports whether any orders-table row references key
	// as its original order number, i.e. whether the order ever split.
	ExistsAsOriginal(ctx context.Context, key string) (bool, error)
	FetchOrders(ctx context.Context, key string) ([]OrderRow, error)
	FetchSkus(ctx context.Context, key string) ([]SkuRow, error)
	FetchCartons(ctx context.Context, key string) ([]CartonRow, error)
	// FetchOriginalOrders returns the rows where key is the original order
	// number; their post-split numbers are the split children to resolve.
	FetchOriginalOrders(ctx context.Context, key string) ([]OrderRow, error)
	// FetchProducts batch-looks-up catalog metadata. An empty sku list
	// returns an empty result without touching the warehouse.
	FetchProducts(ctx context.Context, skus []string) ([]Product, error)
	// Ping probes warehouse connectivity for the health endpoint.
	Ping(ctx context.Context) error
}

// OrderCache is the port for the resolved-order TTL cache.
type OrderCache interface {
	Get(key string) ([]OrderNumber, bool)
	Set(key string, orders []OrderNumber)
	Delete(key string)
}

// ChangeSubscriber is the port for warehouse change-event subscriptions;
// ack/redelivery is the adapter's concern.
type ChangeSubscriber interface {
	Subscribe(ctx context.Context, handler func(ctx context.Context, orderNumber string) error) error
}

// Shared domain errors.
var (
	ErrNotFound   = notFoundError("order not found")
	ErrSplitCycle = cycleError("split-order chain references itself")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type cycleError string

func (e cycleError) Error() string { return string(e) }
