// Package email renders resolved orders as customer-facing plain text.
// It never touches the warehouse; everything it needs is in the resolved
// entities.
package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/wismo-service/internal/domain"
)

const (
	placeholderNA       = "N/A"
	placeholderNoStatus = "Status Not Available"
	placeholderNoItems  = "No items in this order"
	placeholderNoShip   = "No shipping information available"

	dateLayout = "January 2, 2006"
)

// Render builds the full email (subject line plus body) for the resolved
// backorder levels of one order key.
func Render(key string, orders []domain.OrderNumber) string {
	var b strings.Builder

	split := false
	for _, o := range orders {
		if o.SplitOrders != nil {
			split = true
			break
		}
	}
	if split {
		fmt.Fprintf(&b, "Subject: Update: Original Order %s - Split Shipments and Tracking\n\n", key)
	} else {
		fmt.Fprintf(&b, "Subject: Update: Order %s - Shipment and Tracking\n\n", key)
	}

	b.WriteString("Hello,\n\n")
	fmt.Fprintf(&b, "This is an update for order %s. Details are below.\n", key)

	for _, o := range orders {
		renderOrder(&b, o, 0)
	}

	b.WriteString("\nIf you need any additional information, please let me know.\n")
	b.WriteString("\nBest regards,\nCustomer Service\n")
	return b.String()
}

func renderOrder(b *strings.Builder, o domain.OrderNumber, depth int) {
	line(b, depth, "")
	line(b, depth, "Order %d-%d", o.OrderNumber, o.OrderSuffix)
	line(b, depth, "Booked date: %s", o.OrderBookedDate.Format(dateLayout))
	line(b, depth, "Status: %s", displayStatus(o.OrderStatus))
	line(b, depth, "Order contact: %s", orText(o.OrderContactFullName))
	line(b, depth, "Email: %s", orText(o.ContactEmailAddress))
	line(b, depth, "Phone: %s", orText(o.ContactPhone))
	line(b, depth, "Ship to: %s (%d)", orText(o.ShipToName), o.ShipTo)

	line(b, depth, "")
	if len(o.Skus) == 0 {
		line(b, depth, placeholderNoItems)
	} else {
		line(b, depth, "Items")
		for _, s := range o.Skus {
			line(b, depth, "- %s, quantity %s", strText(s.Sku), qtyText(s.PickQty))
		}
	}

	line(b, depth, "")
	if len(o.Cartons) == 0 {
		line(b, depth, placeholderNoShip)
	} else {
		line(b, depth, "Shipping")
		for _, c := range o.Cartons {
			renderCarton(b, c, depth)
		}
	}

	if o.SplitOrders != nil {
		line(b, depth, "")
		line(b, depth, "This order was split into %d order(s):", len(o.SplitOrders))
		for _, so := range o.SplitOrders {
			renderOrder(b, so, depth+1)
		}
	}
}

func renderCarton(b *strings.Builder, c domain.Carton, depth int) {
	line(b, depth, "Carton ID: %s", intText(c.CartonID))
	line(b, depth, "Delivery status: %s", strText(c.DeliveryStatusDescription))
	line(b, depth, "Expected delivery date: %s", dateText(c.ExpectedDeliveryDate))
	line(b, depth, "Actual delivery date: %s", dateText(c.ActualDeliveryDate))
	line(b, depth, "Carrier: %s (%s)", carrierText(c.CarrierDescription), strText(c.CarrierCode))
	line(b, depth, "Tracking link: %s", strText(c.TraceAndTraceLink))
	line(b, depth, "SKUs: %s", skuListText(c.Skus))
}

// line writes one body line indented two spaces per split depth.
func line(b *strings.Builder, depth int, format string, args ...any) {
	if format != "" {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(b, format, args...)
	}
	b.WriteByte('\n')
}

// displayStatus strips the drop-ship prefix and title-cases the raw code.
// Codes already mapped upstream pass through title-casing unchanged in
// practice, and an empty status gets an explicit placeholder.
func displayStatus(status string) string {
	if status == "" {
		return placeholderNoStatus
	}
	status = strings.TrimPrefix(status, "DS-")
	words := strings.Fields(status)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func orText(s string) string {
	if s == "" {
		return placeholderNA
	}
	return s
}

func strText(s *string) string {
	if s == nil || *s == "" {
		return placeholderNA
	}
	return *s
}

func carrierText(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholderNA
	}
	return strings.TrimSpace(*s)
}

func intText(v *int) string {
	if v == nil {
		return placeholderNA
	}
	return fmt.Sprintf("%d", *v)
}

func qtyText(v *int) string {
	if v == nil {
		return placeholderNA
	}
	return fmt.Sprintf("%d", *v)
}

func dateText(t *time.Time) string {
	if t == nil {
		return placeholderNA
	}
	return t.Format(dateLayout)
}

func skuListText(skus []domain.Sku) string {
	if len(skus) == 0 {
		return placeholderNA
	}
	codes := make([]string, 0, len(skus))
	for _, s := range skus {
		if s.Sku != nil {
			codes = append(codes, *s.Sku)
		}
	}
	if len(codes) == 0 {
		return placeholderNA
	}
	return strings.Join(codes, ", ")
}
