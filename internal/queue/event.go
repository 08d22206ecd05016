// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the publisher and the consumer.
const (
	BookingConfirmedQueue = "booking.confirmed"
	BookingCancelledQueue = "booking.cancelled"
	OrderPlacedQueue      = "order.placed"
)

// BookingConfirmedEvent is published when a table booking is created.
// It carries enough information for downstream consumers to log or
// notify staff without re-reading the record store.
type BookingConfirmedEvent struct {
	BookingID   string `json:"booking_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Guests      int    `json:"guests"`
	TableID     string `json:"table_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ConfirmedAt string `json:"confirmed_at"`
}

// BookingCancelledEvent is published when a guest cancels a booking.
type BookingCancelledEvent struct {
	BookingID   string `json:"booking_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Phone       string `json:"phone"`
	CancelledAt string `json:"cancelled_at"`
}

// OrderPlacedEvent is published for each pre-order line attached to a
// booking.
type OrderPlacedEvent struct {
	OrderID   string `json:"order_id"`
	BookingID string `json:"booking_id"`
	ItemName  string `json:"item_name"`
	Quantity  int    `json:"quantity"`
	PriceRub  int    `json:"price_rub"`
	PlacedAt  string `json:"placed_at"`
}
