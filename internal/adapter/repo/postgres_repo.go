package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/example/wismo-service/internal/domain"
)

// WarehouseRepo reads order, SKU, carton and product rows from the
// warehouse. All lookups bind the order key as a query parameter; the key is
// never interpolated into SQL text.
type WarehouseRepo struct {
	Pool *pgxpool.Pool
}

func NewWarehouseRepo(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{Pool: pool}
}

const orderColumns = `postsplitordernumber, ordersuffix, orderbookeddate, orderstatus,
       ordercontactfullname, contactemailaddress, contactphone, shipto, shiptoname`

func (r *WarehouseRepo) ExistsAsOriginal(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wismo_orders WHERE originalordernumber = $1)`, key).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "exists as original")
	}
	return exists, nil
}

func (r *WarehouseRepo) FetchOrders(ctx context.Context, key string) ([]domain.OrderRow, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+orderColumns+` FROM wismo_orders WHERE postsplitordernumber = $1`, key)
	if err != nil {
		return nil, errors.Wrap(err, "fetch orders")
	}
	return scanOrderRows(rows)
}

func (r *WarehouseRepo) FetchOriginalOrders(ctx context.Context, key string) ([]domain.OrderRow, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+orderColumns+` FROM wismo_orders WHERE originalordernumber = $1`, key)
	if err != nil {
		return nil, errors.Wrap(err, "fetch original orders")
	}
	return scanOrderRows(rows)
}

func scanOrderRows(rows pgx.Rows) ([]domain.OrderRow, error) {
	defer rows.Close()
	var out []domain.OrderRow
	for rows.Next() {
		var o domain.OrderRow
		if err := rows.Scan(&o.PostSplitOrderNumber, &o.OrderSuffix, &o.OrderBookedDate,
			&o.OrderStatus, &o.OrderContactFullName, &o.ContactEmailAddress,
			&o.ContactPhone, &o.ShipTo, &o.ShipToName); err != nil {
			return nil, errors.Wrap(err, "scan order row")
		}
		out = append(out, o)
	}
	return out, errors.Wrap(rows.Err(), "order rows")
}

func (r *WarehouseRepo) FetchSkus(ctx context.Context, key string) ([]domain.SkuRow, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT postsplitordernumber, ordersuffix, sku, pickqty
           FROM wismo_skus WHERE postsplitordernumber = $1`, key)
	if err != nil {
		return nil, errors.Wrap(err, "fetch skus")
	}
	defer rows.Close()
	var out []domain.SkuRow
	for rows.Next() {
		var s domain.SkuRow
		if err := rows.Scan(&s.PostSplitOrderNumber, &s.OrderSuffix, &s.Sku, &s.PickQty); err != nil {
			return nil, errors.Wrap(err, "scan sku row")
		}
		out = append(out, s)
	}
	return out, errors.Wrap(rows.Err(), "sku rows")
}

func (r *WarehouseRepo) FetchCartons(ctx context.Context, key string) ([]domain.CartonRow, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT postsplitordernumber, ordersuffix, cartonid, deliverystatusdescription,
                expecteddeliverydate, actualdeliverydate, carriercode, carrierdescription,
                trace_and_trace_link
           FROM wismo_cartons WHERE postsplitordernumber = $1`, key)
	if err != nil {
		return nil, errors.Wrap(err, "fetch cartons")
	}
	defer rows.Close()
	var out []domain.CartonRow
	for rows.Next() {
		var c domain.CartonRow
		if err := rows.Scan(&c.PostSplitOrderNumber, &c.OrderSuffix, &c.CartonID,
			&c.DeliveryStatusDescription, &c.ExpectedDeliveryDate, &c.ActualDeliveryDate,
			&c.CarrierCode, &c.CarrierDescription, &c.TraceAndTraceLink); err != nil {
			return nil, errors.Wrap(err, "scan carton row")
		}
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "carton rows")
}

// FetchProducts batch-looks-up catalog rows. An empty sku list short-circuits
// to an empty result without issuing a query.
func (r *WarehouseRepo) FetchProducts(ctx context.Context, skus []string) ([]domain.Product, error) {
	if len(skus) == 0 {
		return []domain.Product{}, nil
	}
	rows, err := r.Pool.Query(ctx,
		`SELECT prod_sku, prod_hfadescription1, prod_manufacturername
           FROM wismo_products WHERE prod_sku = ANY($1)`, skus)
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	defer rows.Close()
	out := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.Sku, &p.HfaDescription, &p.ManufacturerName); err != nil {
			return nil, errors.Wrap(err, "scan product row")
		}
		out = append(out, p)
	}
	return out, errors.Wrap(rows.Err(), "product rows")
}

func (r *WarehouseRepo) Ping(ctx context.Context) error {
	return errors.Wrap(r.Pool.Ping(ctx), "warehouse ping")
}

var _ domain.WarehouseRepository = (*WarehouseRepo)(nil)
