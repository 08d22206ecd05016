package bot

import (
	"strings"

	"github.com/KoponovVadim/qrim/internal/model"
)

// matchMenuItem resolves a free-form item name against the menu.  The
// passes run in order of confidence: exact case-insensitive match
// first, then substring containment in both directions, so "мохито"
// finds "Коктейль Мохито" and "Коктейль Мохито делюкс" finds "Мохито".
// The first hit in sheet order wins; nil means no match.
func matchMenuItem(menu []model.MenuItem, name string) *model.MenuItem {
	wanted := strings.ToLower(strings.TrimSpace(name))
	if wanted == "" {
		return nil
	}
	for i := range menu {
		if strings.ToLower(menu[i].Name) == wanted {
			return &menu[i]
		}
	}
	for i := range menu {
		itemName := strings.ToLower(menu[i].Name)
		if strings.Contains(itemName, wanted) || strings.Contains(wanted, itemName) {
			return &menu[i]
		}
	}
	return nil
}
