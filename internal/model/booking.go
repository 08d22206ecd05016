package model

// Booking statuses.  Bookings are never physically deleted; a
// cancellation flips the status column instead.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// BookingSourceTelegram marks bookings created through the Telegram bot.
const BookingSourceTelegram = "telegram"

// Booking is a single table reservation as stored in the bookings sheet.
// Dates use YYYY-MM-DD and times use HH:MM, both as entered by guests
// and validated by the dialogue flow.
//
// Fields:
//  ID        – monotonic identifier with a "B" prefix, e.g. "B0042".
//  Date      – booking date (YYYY-MM-DD).
//  Time      – booking time (HH:MM).
//  Guests    – party size.
//  TableID   – table assigned by the availability engine.
//  Name      – guest contact name.
//  Phone     – guest contact phone; used for lookups and duplicate checks.
//  Source    – origin channel, currently always "telegram".
//  Status    – confirmed or cancelled.
//  CreatedAt – creation timestamp (YYYY-MM-DD HH:MM).
type Booking struct {
	ID        string // bookings col A
	Date      string // bookings col B
	Time      string // bookings col C
	Guests    int    // bookings col D
	TableID   string // bookings col E
	Name      string // bookings col F
	Phone     string // bookings col G
	Source    string // bookings col H
	Status    string // bookings col I
	CreatedAt string // bookings col J
}
