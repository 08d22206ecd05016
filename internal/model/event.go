package model

// Event is a venue happening announced in the events sheet.  Only
// active events whose end date has not passed are shown to guests.
//
// Fields:
//  ID          – event identifier.
//  Title       – headline shown in chat.
//  Description – free-form description.
//  DateFrom    – first day of the event (YYYY-MM-DD).
//  DateTo      – last day of the event (YYYY-MM-DD).
//  TimeFrom    – daily start time (HH:MM).
//  TimeTo      – daily end time (HH:MM).
//  ImageURL    – optional poster image sent as a photo when present.
//  BookingCTA  – when true the announcement invites the guest to book.
//  Active      – staff visibility switch.
type Event struct {
	ID          string // events col A
	Title       string // events col B
	Description string // events col C
	DateFrom    string // events col D
	DateTo      string // events col E
	TimeFrom    string // events col F
	TimeTo      string // events col G
	ImageURL    string // events col H (may be empty)
	BookingCTA  bool   // events col I
	Active      bool   // events col J
}
