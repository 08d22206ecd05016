package model

// MenuItem is an orderable position from the menu sheet.  Unlike the
// price list, menu items carry a numeric price so orders can be priced.
//
// Fields:
//  Category    – grouping key (cocktails, hookah, snacks, ...).
//  Name        – item name; order resolution matches against it.
//  Description – optional description.
//  Price       – unit price in rubles.
//  Unit        – serving unit.
//  Active      – staff visibility switch.
type MenuItem struct {
	Category    string // menu col A
	Name        string // menu col B
	Description string // menu col C
	Price       int    // menu col D
	Unit        string // menu col E
	Active      bool   // menu col F
}
