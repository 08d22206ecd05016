package model

// Table describes a bookable table in the venue.  Tables are curated
// externally and are read-only for this service; the availability
// engine walks them in sheet order when searching for a free slot.
//
// Fields:
//  ID       – human-readable identifier, e.g. "T1".
//  Name     – display name shown to staff.
//  Capacity – maximum number of guests; always positive for active rows.
//  Zone     – area of the venue the table belongs to.
//  Active   – whether the table can currently be booked.
type Table struct {
	ID       string // tables col A
	Name     string // tables col B
	Capacity int    // tables col C
	Zone     string // tables col D
	Active   bool   // tables col E
}
