package model

// Venue holds the static profile of the lounge as curated by staff in
// the venue sheet.  The sheet stores key/value pairs, one attribute per
// row, which the repository folds into this struct.
//
// Fields:
//  Name       – display name of the venue.
//  City       – city the venue operates in.
//  Address    – street address.
//  Phone      – contact phone number.
//  Timezone   – IANA timezone name used for business dates.
//  WorkSunThu – opening hours for Sunday through Thursday.
//  WorkFriSat – opening hours for Friday and Saturday.
type Venue struct {
	Name       string // venue key "name"
	City       string // venue key "city"
	Address    string // venue key "address"
	Phone      string // venue key "phone"
	Timezone   string // venue key "timezone"
	WorkSunThu string // venue key "work_sun_thu"
	WorkFriSat string // venue key "work_fri_sat"
}
