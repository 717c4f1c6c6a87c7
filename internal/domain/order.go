package domain

import "time"

// OrderNumber is the resolved view of a single backorder level of an order.
// orderNumber+orderSuffix is the natural key; every SKU and carton in the
// owned lists carries the same co-key as its owning order.
type OrderNumber struct {
	OrderNumber          int       `json:"orderNumber"`
	OrderSuffix          int       `json:"orderSuffix"`
	OrderBookedDate      time.Time `json:"orderBookedDate"`
	OrderStatus          string    `json:"orderStatus"`
	OrderContactFullName string    `json:"orderContactFullName"`
	ContactEmailAddress  string    `json:"contactEmailAddress"`
	ContactPhone         string    `json:"contactPhone"`
	ShipTo               int       `json:"shipTo"`
	ShipToName           string    `json:"shipToName"`
	// SplitOrders is nil when the warehouse never references this order as
	// an original. When it does, this holds every order the split produced,
	// each resolved to the same depth.
	SplitOrders []OrderNumber `json:"splitOrders"`
	Skus        []Sku         `json:"skus"`
	Cartons     []Carton      `json:"cartons"`
}

// Sku is a single line item of an order.
type Sku struct {
	OrderNumber int     `json:"orderNumber"`
	OrderSuffix int     `json:"orderSuffix"`
	Sku         *string `json:"sku"`
	PickQty     *int    `json:"pickQty"`
}

// Carton is a physical shipping unit. A nil ActualDeliveryDate means the
// carton has not been delivered yet.
type Carton struct {
	OrderNumber               int        `json:"orderNumber"`
	OrderSuffix               int        `json:"orderSuffix"`
	CartonID                  *int       `json:"cartonId"`
	DeliveryStatusDescription *string    `json:"deliveryStatusDescription"`
	ExpectedDeliveryDate      *time.Time `json:"expectedDeliveryDate"`
	ActualDeliveryDate        *time.Time `json:"actualDeliveryDate"`
	CarrierCode               *string    `json:"carrierCode"`
	CarrierDescription        *string    `json:"carrierDescription"`
	TraceAndTraceLink         *string    `json:"traceAndTraceLink"`
	Skus                      []Sku      `json:"skus"`
}

// Product is the catalog metadata for a SKU code.
type Product struct {
	Sku              string `json:"sku"`
	HfaDescription   string `json:"hfaDescription"`
	ManufacturerName string `json:"manufacturerName"`
}

// OrderRow is a raw orders-table row keyed by the post-split order number.
type OrderRow struct {
	PostSplitOrderNumber int
	OrderSuffix          int
	OrderBookedDate      time.Time
	OrderStatus          string
	OrderContactFullName string
	ContactEmailAddress  string
	ContactPhone         string
	ShipTo               int
	ShipToName           string
}

// SkuRow is a raw line-item row. The warehouse stores pick quantities as a
// numeric that may carry a fractional part.
type SkuRow struct {
	PostSplitOrderNumber int
	OrderSuffix          int
	Sku                  *string
	PickQty              *float64
}

// CartonRow is a raw cartons-table row.
type CartonRow struct {
	PostSplitOrderNumber      int
	OrderSuffix               int
	CartonID                  *int
	DeliveryStatusDescription *string
	ExpectedDeliveryDate      *time.Time
	ActualDeliveryDate        *time.Time
	CarrierCode               *string
	CarrierDescription        *string
	TraceAndTraceLink         *string
}
