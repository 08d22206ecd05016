package model

// Price is a single line of the public price list.  Prices are curated
// externally and read-only for this service.
//
// Fields:
//  ID          – price row identifier.
//  Category    – grouping key (hookah, table, drinks, balloons, extra).
//  Name        – position name.
//  Description – optional clarification shown in parentheses.
//  Price       – price text as written by staff (may include currency).
//  Unit        – unit the price applies to.
//  MinQty      – optional minimum quantity note.
//  Active      – staff visibility switch.
type Price struct {
	ID          string // prices col A
	Category    string // prices col B
	Name        string // prices col C
	Description string // prices col D
	Price       string // prices col E
	Unit        string // prices col F
	MinQty      string // prices col G (may be empty)
	Active      bool   // prices col H
}
