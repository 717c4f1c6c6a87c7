package usecase

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/example/wismo-service/internal/domain"
	"github.com/example/wismo-service/internal/email"
)

const cacheKeyPrefix = "order_"

// ResolveOrderTree materializes the full fulfillment history of an order
// key: one OrderNumber per backorder level, each populated with its SKUs,
// cartons and recursively resolved split orders.
type ResolveOrderTree struct {
	Repo  domain.WarehouseRepository
	Cache domain.OrderCache
}

func (uc ResolveOrderTree) Execute(ctx context.Context, key string) ([]domain.OrderNumber, error) {
	return uc.resolve(ctx, key, map[string]struct{}{})
}

// resolve walks one order key. visited holds every key already on the walk;
// meeting one again means the warehouse data forms a cycle.
func (uc ResolveOrderTree) resolve(ctx context.Context, key string, visited map[string]struct{}) ([]domain.OrderNumber, error) {
	cacheKey := cacheKeyPrefix + key
	if cached, ok := uc.Cache.Get(cacheKey); ok {
		log.WithField("order", key).Debug("cache hit")
		return cached, nil
	}
	if _, seen := visited[key]; seen {
		return nil, errors.Wrapf(domain.ErrSplitCycle, "order %s", key)
	}
	visited[key] = struct{}{}
	log.WithField("order", key).Debug("cache miss, querying warehouse")

	orderRows, err := uc.Repo.FetchOrders(ctx, key)
	if err != nil {
		return nil, err
	}
	hasSplits, err := uc.Repo.ExistsAsOriginal(ctx, key)
	if err != nil {
		return nil, err
	}
	skuRows, err := uc.Repo.FetchSkus(ctx, key)
	if err != nil {
		return nil, err
	}
	cartonRows, err := uc.Repo.FetchCartons(ctx, key)
	if err != nil {
		return nil, err
	}

	// The split children belong to the order number as a whole, so they are
	// resolved once and shared by every backorder level. splitOrders stays
	// nil when the key is never referenced as an original; when it is, the
	// resolved list is non-nil even if the follow-up lookup comes back empty.
	var splitOrders []domain.OrderNumber
	if hasSplits {
		splitOrders = []domain.OrderNumber{}
		originalRows, err := uc.Repo.FetchOriginalOrders(ctx, key)
		if err != nil {
			return nil, err
		}
		for _, row := range originalRows {
			children, err := uc.resolve(ctx, strconv.Itoa(row.PostSplitOrderNumber), visited)
			if err != nil {
				return nil, err
			}
			splitOrders = append(splitOrders, children...)
		}
	}

	orders := make([]domain.OrderNumber, 0, len(orderRows))
	for _, row := range orderRows {
		orders = append(orders, domain.OrderNumber{
			OrderNumber:          row.PostSplitOrderNumber,
			OrderSuffix:          row.OrderSuffix,
			OrderBookedDate:      row.OrderBookedDate,
			OrderStatus:          domain.DisplayStatus(row.OrderStatus),
			OrderContactFullName: row.OrderContactFullName,
			ContactEmailAddress:  row.ContactEmailAddress,
			ContactPhone:         row.ContactPhone,
			ShipTo:               row.ShipTo,
			ShipToName:           row.ShipToName,
			SplitOrders:          splitOrders,
			Skus:                 matchSkus(skuRows, row.PostSplitOrderNumber, row.OrderSuffix),
			Cartons:              matchCartons(cartonRows, skuRows, row.PostSplitOrderNumber, row.OrderSuffix),
		})
	}

	uc.Cache.Set(cacheKey, orders)
	return orders, nil
}

// matchSkus converts the SKU rows sharing the given co-key, truncating any
// fractional pick quantity the warehouse reports.
func matchSkus(rows []domain.SkuRow, orderNumber, suffix int) []domain.Sku {
	skus := []domain.Sku{}
	for _, row := range rows {
		if row.PostSplitOrderNumber != orderNumber || row.OrderSuffix != suffix {
			continue
		}
		var pickQty *int
		if row.PickQty != nil {
			qty := int(*row.PickQty)
			pickQty = &qty
		}
		skus = append(skus, domain.Sku{
			OrderNumber: row.PostSplitOrderNumber,
			OrderSuffix: row.OrderSuffix,
			Sku:         row.Sku,
			PickQty:     pickQty,
		})
	}
	return skus
}

// matchCartons builds the cartons owned by the given co-key. A carton's SKU
// sublist is the subset of the owning order's SKUs sharing the carton's
// exact (orderNumber, orderSuffix).
func matchCartons(rows []domain.CartonRow, skuRows []domain.SkuRow, orderNumber, suffix int) []domain.Carton {
	cartons := []domain.Carton{}
	for _, row := range rows {
		if row.PostSplitOrderNumber != orderNumber || row.OrderSuffix != suffix {
			continue
		}
		cartons = append(cartons, domain.Carton{
			OrderNumber:               row.PostSplitOrderNumber,
			OrderSuffix:               row.OrderSuffix,
			CartonID:                  row.CartonID,
			DeliveryStatusDescription: row.DeliveryStatusDescription,
			ExpectedDeliveryDate:      row.ExpectedDeliveryDate,
			ActualDeliveryDate:        row.ActualDeliveryDate,
			CarrierCode:               row.CarrierCode,
			CarrierDescription:        row.CarrierDescription,
			TraceAndTraceLink:         row.TraceAndTraceLink,
			Skus:                      matchSkus(skuRows, row.PostSplitOrderNumber, row.OrderSuffix),
		})
	}
	return cartons
}

// LookupProducts batch-resolves catalog metadata for SKU codes.
type LookupProducts struct {
	Repo domain.WarehouseRepository
}

func (uc LookupProducts) Execute(ctx context.Context, skus []string) ([]domain.Product, error) {
	return uc.Repo.FetchProducts(ctx, skus)
}

// ComposeOrderEmail resolves an order and renders it as a customer email.
type ComposeOrderEmail struct {
	Resolve ResolveOrderTree
}

func (uc ComposeOrderEmail) Execute(ctx context.Context, key string) (string, error) {
	orders, err := uc.Resolve.Execute(ctx, key)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "", domain.ErrNotFound
	}
	return email.Render(key, orders), nil
}

// CheckHealth probes warehouse connectivity.
type CheckHealth struct {
	Repo domain.WarehouseRepository
}

func (uc CheckHealth) Execute(ctx context.Context) error {
	return uc.Repo.Ping(ctx)
}

// EvictOrder drops an order key from the cache, forcing the next request to
// re-resolve against the warehouse. Used by the change-event subscriber.
type EvictOrder struct {
	Cache domain.OrderCache
}

func (uc EvictOrder) Execute(key string) {
	uc.Cache.Delete(cacheKeyPrefix + key)
}
