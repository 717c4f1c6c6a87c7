package domain

// orderStatusDisplay maps raw warehouse status codes to their customer-facing
// names. This is configuration data coming from the fulfillment team, not
// logic; unmapped codes pass through unchanged.
var orderStatusDisplay = map[string]string{
	"Shipped ovrnigh":      "Shipped Overnight",
	"SHP Await Invoice":    "Shipped, Awaiting Invoice",
	"DS-Entry hold":        "Entry Hold",
	"DS-Pending Inv Error": "Pending Inventory Error",
	"DS-SHP Pend Cust Inv": "Shipped, Pending Customer Invoice",
	"DS-Credit Review":     "Credit Review",
	"DS-SHP Await Invoice": "Shipped, Awaiting Invoice",
	"DS-Await Vend SHP":    "Awaiting Vendor Shipment",
	"C.C. Shipped":         "Shipped",
	"Awaiting wave":        "Awaiting Wave",
	"DS-PO Gen Pending":    "Purchase Order Pending",
	"Invoiced":             "Invoiced",
	"Awaiting stock":       "Awaiting Stock",
	"Process pending":      "Process Pending",
	"Shipped":              "Shipped",
	"Entry hold":           "Entry Hold",
	"Shipper printed":      "Shipper Printed",
	"DS-C.C. Shipped":      "Shipped",
	"Pricing Hold":         "Pricing Hold",
	"Credit Review":        "Credit Review",
	"Ready to Print":       "Ready to Print",
}

// DisplayStatus translates a raw warehouse status code to its display name,
// falling back to the raw code when no mapping exists.
func DisplayStatus(raw string) string {
	if display, ok := orderStatusDisplay[raw]; ok {
		return display
	}
	return raw
}

// Delivery status descriptions as they appear on carton rows.
const (
	DeliveryOnTime = "On-Time"
	DeliveryLate   = "Late Delivery"
	DeliveryEarly  = "Early Delivery"
	DeliveryNoPOD  = "No POD"
)
