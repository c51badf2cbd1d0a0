package domain

import (
	"fmt"
	"strings"
)

type OrderType string

const (
	OrderTypeDepot      OrderType = "Depot"
	OrderTypeRestaurant OrderType = "Restaurant"
	OrderTypeRetailer   OrderType = "Retailer"
	OrderTypeBusiness   OrderType = "Business"

	// Pickup-delivery mode.
	OrderTypePickup   OrderType = "Pickup"
	OrderTypeDelivery OrderType = "Delivery"
)

// ParseOrderType accepts the canonical names case-insensitively.
// The source data spells the depot as "DEPOT".
func ParseOrderType(s string) (OrderType, error) {
	for _, t := range []OrderType{
		OrderTypeDepot,
		OrderTypeRestaurant,
		OrderTypeRetailer,
		OrderTypeBusiness,
		OrderTypePickup,
		OrderTypeDelivery,
	} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("parse order type: unknown type %q", s)
}

// Represents one row of the order master table.
// The depot is an order row too; its Location is the depot's matrix index.
type Order struct {
	OrderID       int         `json:"order_id"`
	Location      int         `json:"location"`
	DeliveryStart int         `json:"delivery_start"`
	DeliveryEnd   int         `json:"delivery_end"`
	ServiceTime   int         `json:"service_time"`
	Weight        float64     `json:"weight"`
	Type          OrderType   `json:"type"`
	Coord         Coordinates `json:"coord"`
}
