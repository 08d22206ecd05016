package model

// IntentKind enumerates everything the classifier can decide about an
// inbound message.  Handlers dispatch with an exhaustive switch over
// this type; unknown classifier output maps to IntentOther.
type IntentKind string

const (
	IntentInfo   IntentKind = "info"   // questions about address, hours, contacts
	IntentBook   IntentKind = "book"   // table reservation flow
	IntentEvents IntentKind = "events" // upcoming events
	IntentPrices IntentKind = "prices" // price list
	IntentCancel IntentKind = "cancel" // cancel an existing booking
	IntentModify IntentKind = "modify" // change time or party size of a booking
	IntentMenu   IntentKind = "menu"   // show the menu
	IntentOrder  IntentKind = "order"  // pre-order menu items for a booking
	IntentOther  IntentKind = "other"  // small talk and everything unclassified
)

// RequestedItem is one line of an order request as extracted by the
// classifier.  The name is matched against the menu sheet later; it is
// not guaranteed to exist there.
type RequestedItem struct {
	Name     string
	Quantity int
}

// Slots carries the fields the classifier extracted from the message.
// Empty strings mean "not mentioned"; extraction never produces a value
// that should erase previously collected state.
type Slots struct {
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	Guests    string // party size as spoken, parsed later
	Name      string
	Phone     string
	Category  string // menu/price category filter
	BookingID string // explicit booking reference, e.g. "B0042"
	Items     []RequestedItem
}

// Intent is the typed result of a classifier call: the decided kind,
// any extracted slots and the model's own conversational reply, which
// is used verbatim for IntentOther and appended to info answers.
type Intent struct {
	Kind  IntentKind
	Slots Slots
	Reply string
}
