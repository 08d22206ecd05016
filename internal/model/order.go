package model

// OrderStatusPending is the initial status of every created order; staff
// move orders forward in the sheet by hand.
const OrderStatusPending = "pending"

// Order is a pre-order line attached to a booking.  Each requested menu
// item becomes its own order row.
//
// Fields:
//  ID        – monotonic identifier with an "O" prefix, e.g. "O0007".
//  BookingID – booking the order belongs to.
//  ItemName  – menu item name as resolved against the menu sheet.
//  Quantity  – number of units ordered; always positive.
//  Price     – total price in rubles (unit price × quantity).
//  CreatedAt – creation timestamp (YYYY-MM-DD HH:MM).
//  Status    – lifecycle state, starts as "pending".
type Order struct {
	ID        string // orders col A
	BookingID string // orders col B
	ItemName  string // orders col C
	Quantity  int    // orders col D
	Price     int    // orders col E
	CreatedAt string // orders col F
	Status    string // orders col G
}
