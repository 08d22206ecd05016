package bot

import (
	"fmt"
	"strings"

	"github.com/KoponovVadim/qrim/internal/dialogue"
	"github.com/KoponovVadim/qrim/internal/model"
)

// Shared fallback texts.
const (
	replyStoreFailure = "Что-то пошло не так, попробуйте ещё раз чуть позже 🙏"
	replyPhoneNeeded  = "Укажите номер телефона, на который оформлена бронь"
)

const greetingText = `Привет! Я помощник QRIM Lounge 👋

Могу:
📍 Рассказать о заведении
🎉 Показать ближайшие мероприятия
💰 Показать цены
🍸 Показать меню
📅 Забронировать столик
🛎 Принять предзаказ к брони

Просто напишите, что вас интересует!

Команды:
/menu — меню
/reset — начать диалог заново`

// prompts asked by the slot-filling flow, keyed by dialogue field.
var fieldPrompts = map[string]string{
	dialogue.FieldDate:   "Укажите дату бронирования (например, 2026-02-15)",
	dialogue.FieldTime:   "Укажите время (например, 19:00)",
	dialogue.FieldGuests: "Сколько будет гостей?",
	dialogue.FieldName:   "Как вас зовут?",
	dialogue.FieldPhone:  "Оставьте номер телефона для связи",
}

func promptFor(field string) string {
	if p, ok := fieldPrompts[field]; ok {
		return p
	}
	return "Уточните, пожалуйста, детали брони"
}

// venueCard renders the venue profile.  The classifier's own reply, if
// any, leads the card so the answer still feels conversational.
func venueCard(v model.Venue, aiReply string) string {
	var b strings.Builder
	if aiReply != "" {
		b.WriteString(aiReply)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "📍 %s", v.Name)
	if v.City != "" {
		fmt.Fprintf(&b, ", %s", v.City)
	}
	if v.Address != "" {
		fmt.Fprintf(&b, "\n🗺 %s", v.Address)
	}
	if v.Phone != "" {
		fmt.Fprintf(&b, "\n📞 %s", v.Phone)
	}
	if v.WorkSunThu != "" {
		fmt.Fprintf(&b, "\n🕐 Вс–Чт: %s", v.WorkSunThu)
	}
	if v.WorkFriSat != "" {
		fmt.Fprintf(&b, "\n🕐 Пт–Сб: %s", v.WorkFriSat)
	}
	return b.String()
}

// eventCard renders one event announcement.
func eventCard(ev model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 %s\n", ev.Title)
	if ev.Description != "" {
		fmt.Fprintf(&b, "%s\n", ev.Description)
	}
	if ev.DateFrom == ev.DateTo || ev.DateTo == "" {
		fmt.Fprintf(&b, "📅 %s", ev.DateFrom)
	} else {
		fmt.Fprintf(&b, "📅 %s — %s", ev.DateFrom, ev.DateTo)
	}
	if ev.TimeFrom != "" {
		fmt.Fprintf(&b, "\n🕐 %s", ev.TimeFrom)
		if ev.TimeTo != "" {
			fmt.Fprintf(&b, "–%s", ev.TimeTo)
		}
	}
	if ev.BookingCTA {
		b.WriteString("\n\nХотите забронировать столик на этот день? 😉")
	}
	return b.String()
}

// priceCategories fixes the rendering order and headers of the price
// list; categories not listed here land at the bottom under their raw
// key.
var priceCategories = []struct {
	key   string
	title string
}{
	{"hookah", "🔥 Кальяны"},
	{"table", "🪑 Столы и зоны"},
	{"drinks", "🍹 Напитки"},
	{"balloons", "🎈 Дополнительно"},
	{"extra", "✨ Ещё"},
}

// priceListText renders the price list grouped by category in the fixed
// display order.
func priceListText(prices []model.Price) string {
	byCategory := make(map[string][]model.Price)
	for _, p := range prices {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}

	var b strings.Builder
	b.WriteString("💰 Наши цены:\n")
	appendGroup := func(title string, group []model.Price) {
		fmt.Fprintf(&b, "\n%s\n", title)
		for _, p := range group {
			fmt.Fprintf(&b, "• %s", p.Name)
			if p.Description != "" {
				fmt.Fprintf(&b, " (%s)", p.Description)
			}
			fmt.Fprintf(&b, " — %s", p.Price)
			if p.Unit != "" {
				fmt.Fprintf(&b, " / %s", p.Unit)
			}
			if p.MinQty != "" {
				fmt.Fprintf(&b, ", от %s", p.MinQty)
			}
			b.WriteString("\n")
		}
	}

	seen := make(map[string]bool)
	for _, cat := range priceCategories {
		if group, ok := byCategory[cat.key]; ok {
			appendGroup(cat.title, group)
			seen[cat.key] = true
		}
	}
	// Unknown categories keep their sheet order relative to each other.
	for _, p := range prices {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		appendGroup(p.Category, byCategory[p.Category])
	}
	return b.String()
}

// menuCategoryTitles maps menu category keys to display headers.
var menuCategoryTitles = map[string]string{
	"cocktails":   "🍸 Коктейли",
	"soft_drinks": "🥤 Безалкогольные",
	"hookah":      "💨 Кальяны",
	"shots":       "🥃 Шоты",
	"beer":        "🍺 Пиво",
	"alcohol":     "🍾 Алкоголь",
	"snacks":      "🍿 Закуски",
}

// menuCategoryOrder fixes rendering order for known categories.
var menuCategoryOrder = []string{"cocktails", "soft_drinks", "hookah", "shots", "beer", "alcohol", "snacks"}

// menuText renders active menu items grouped by category.
func menuText(items []model.MenuItem) string {
	byCategory := make(map[string][]model.MenuItem)
	for _, it := range items {
		byCategory[it.Category] = append(byCategory[it.Category], it)
	}

	var b strings.Builder
	b.WriteString("🍽 Меню:\n")
	appendGroup := func(title string, group []model.MenuItem) {
		fmt.Fprintf(&b, "\n%s\n", title)
		for _, it := range group {
			fmt.Fprintf(&b, "• %s — %d ₽", it.Name, it.Price)
			if it.Unit != "" {
				fmt.Fprintf(&b, " / %s", it.Unit)
			}
			b.WriteString("\n")
		}
	}

	seen := make(map[string]bool)
	for _, key := range menuCategoryOrder {
		if group, ok := byCategory[key]; ok {
			appendGroup(menuCategoryTitles[key], group)
			seen[key] = true
		}
	}
	for _, it := range items {
		if seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		appendGroup(it.Category, byCategory[it.Category])
	}
	b.WriteString("\nЧто-нибудь приглянулось? Могу добавить к вашей брони! 😊")
	return b.String()
}

// bookingConfirmedText renders the final confirmation after a booking
// is created.
func bookingConfirmedText(bookingID string, st dialogue.State) string {
	return fmt.Sprintf(
		"✅ Столик забронирован!\n\n📋 Номер брони: %s\n📅 %s в %s\n👥 Гостей: %s\n📞 %s\n\nЖдём вас! Если планы изменятся — просто напишите.",
		bookingID, st.Date, st.Time, st.Guests, st.Phone)
}

// bookingListText renders the disambiguation list for cancel/modify
// when a guest has several active bookings.
func bookingListText(bookings []model.Booking, instruction string) string {
	var b strings.Builder
	b.WriteString("У вас несколько активных броней:\n\n")
	for _, bk := range bookings {
		fmt.Fprintf(&b, "📋 %s — %s в %s, гостей: %d\n", bk.ID, bk.Date, bk.Time, bk.Guests)
	}
	b.WriteString("\n")
	b.WriteString(instruction)
	return b.String()
}
