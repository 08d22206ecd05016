package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KoponovVadim/qrim/internal/dialogue"
	"github.com/KoponovVadim/qrim/internal/logger"
	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/queue"
	"github.com/KoponovVadim/qrim/internal/repository"
	queue_publisher "github.com/KoponovVadim/qrim/internal/service"
)

// handleInfo renders the venue card plus whatever conversational text
// the model produced.
func (b *Bot) handleInfo(ctx context.Context, intent model.Intent) []reply {
	venue, err := b.repos.Venue.Get(ctx)
	if err != nil {
		logger.Error.Errorf("bot: read venue: %v", err)
		return []reply{textReply(replyStoreFailure)}
	}
	return []reply{textReply(venueCard(venue, intent.Reply))}
}

// handleEvents announces up to five upcoming events, each as its own
// message so posters render individually.
func (b *Bot) handleEvents(ctx context.Context) []reply {
	events, err := b.repos.Events.ListUpcoming(ctx, 5)
	if err != nil {
		logger.Error.Errorf("bot: read events: %v", err)
		return []reply{textReply(replyStoreFailure)}
	}
	if len(events) == 0 {
		return []reply{textReply("Пока нет запланированных мероприятий 📅")}
	}
	replies := []reply{textReply("🎉 Ближайшие мероприятия:")}
	for _, ev := range events {
		replies = append(replies, reply{text: eventCard(ev), photoURL: ev.ImageURL})
	}
	return replies
}

// handlePrices renders the grouped price list; an unreadable or empty
// sheet deflects to the administrator.
func (b *Bot) handlePrices(ctx context.Context) []reply {
	prices, err := b.repos.Prices.ListActive(ctx, "")
	if err != nil {
		logger.Error.Errorf("bot: read prices: %v", err)
		return []reply{textReply("Уточню прайс у администратора!")}
	}
	if len(prices) == 0 {
		return []reply{textReply("Уточню прайс у администратора!")}
	}
	return []reply{textReply(priceListText(prices))}
}

// handleBook advances the slot-filling dialogue and renders its
// outcome.  A confirmed booking also notifies staff via the broker;
// publish failures are logged by the publisher and never shown to the
// guest.
func (b *Bot) handleBook(ctx context.Context, userID int64, slots model.Slots) []reply {
	action, err := b.dialogue.Advance(ctx, userID, slots)
	if err != nil {
		logger.Error.Errorf("bot: advance dialogue for user %d: %v", userID, err)
		return []reply{textReply(replyStoreFailure)}
	}
	switch action.Kind {
	case dialogue.ActionPrompt:
		return []reply{textReply(promptFor(action.Field))}
	case dialogue.ActionDuplicate:
		return []reply{textReply(fmt.Sprintf(
			"У вас уже есть подтверждённая бронь на %s 📅\nЕсли нужно изменить — позвоните нам или напишите /reset для новой брони.",
			action.State.Date))}
	case dialogue.ActionUnavailable:
		return []reply{textReply(fmt.Sprintf(
			"К сожалению, на %s в %s нет свободных мест 😔\nПопробуйте другое время или дату.",
			action.State.Date, action.State.Time))}
	case dialogue.ActionCreateFailed:
		return []reply{textReply("Произошла ошибка при бронировании. Позвоните нам напрямую!")}
	case dialogue.ActionBooked:
		_ = queue_publisher.PublishBookingConfirmed(ctx, queue.BookingConfirmedEvent{
			BookingID:   action.BookingID,
			Date:        action.State.Date,
			Time:        action.State.Time,
			Guests:      action.State.GuestsInt(),
			TableID:     action.TableID,
			Name:        action.State.Name,
			Phone:       action.State.Phone,
			ConfirmedAt: time.Now().Format("2006-01-02 15:04"),
		})
		return []reply{textReply(bookingConfirmedText(action.BookingID, action.State))}
	default:
		return []reply{textReply(replyStoreFailure)}
	}
}

// handleCancel resolves the guest's bookings by phone and cancels one
// of them.  With several active bookings the guest is asked for an
// explicit booking id; each turn resolves independently, nothing is
// persisted between turns.
func (b *Bot) handleCancel(ctx context.Context, slots model.Slots) []reply {
	if slots.Phone == "" {
		return []reply{textReply(replyPhoneNeeded)}
	}
	bookings, err := b.repos.Bookings.FindConfirmedByPhone(ctx, slots.Phone)
	if err != nil {
		logger.Error.Errorf("bot: find bookings by phone: %v", err)
		return []reply{textReply(replyStoreFailure)}
	}
	if len(bookings) == 0 {
		return []reply{textReply("Активных броней на этот номер не найдено 🤷")}
	}

	target, picked := pickBooking(bookings, slots.BookingID)
	if !picked {
		if slots.BookingID != "" {
			text := fmt.Sprintf("Не нашли бронь %s среди ваших 🤔\n\n", slots.BookingID) +
				bookingListText(bookings, "Укажите номер брони (например, B0001) для отмены")
			return []reply{textReply(text)}
		}
		return []reply{textReply(bookingListText(bookings, "Укажите номер брони (например, B0001) для отмены"))}
	}

	if err := b.repos.Bookings.SetStatus(ctx, target.ID, model.BookingStatusCancelled); err != nil {
		logger.Error.Errorf("bot: cancel booking %s: %v", target.ID, err)
		return []reply{textReply("Ошибка отмены брони. Позвоните нам напрямую.")}
	}
	_ = queue_publisher.PublishBookingCancelled(ctx, queue.BookingCancelledEvent{
		BookingID:   target.ID,
		Date:        target.Date,
		Time:        target.Time,
		Phone:       target.Phone,
		CancelledAt: time.Now().Format("2006-01-02 15:04"),
	})
	return []reply{textReply(fmt.Sprintf(
		"✅ Бронь отменена:\n\n📋 %s\n📅 %s в %s\n👥 Гостей: %d\n\nБудем рады видеть вас в другой раз!",
		target.ID, target.Date, target.Time, target.Guests))}
}

// handleModify updates the time and/or party size of a booking
// resolved by phone, with the same disambiguation rules as cancel.
func (b *Bot) handleModify(ctx context.Context, slots model.Slots) []reply {
	if slots.Phone == "" {
		return []reply{textReply(replyPhoneNeeded)}
	}
	bookings, err := b.repos.Bookings.FindConfirmedByPhone(ctx, slots.Phone)
	if err != nil {
		logger.Error.Errorf("bot: find bookings by phone: %v", err)
		return []reply{textReply(replyStoreFailure)}
	}
	if len(bookings) == 0 {
		return []reply{textReply("Активных броней на этот номер не найдено 🤷")}
	}

	target, picked := pickBooking(bookings, slots.BookingID)
	if !picked {
		return []reply{textReply(bookingListText(bookings, "Укажите номер брони и что хотите изменить"))}
	}
	if slots.Time == "" && slots.Guests == "" {
		return []reply{textReply("Что хотите изменить? Например: время 20:00 или число гостей.")}
	}

	upd := repository.BookingUpdate{Time: slots.Time, Guests: slots.Guests}
	if err := b.repos.Bookings.UpdateFields(ctx, target.ID, upd); err != nil {
		logger.Error.Errorf("bot: update booking %s: %v", target.ID, err)
		return []reply{textReply("Ошибка обновления брони. Позвоните нам напрямую.")}
	}

	newTime := target.Time
	if slots.Time != "" {
		newTime = slots.Time
	}
	text := fmt.Sprintf("✅ Бронь обновлена:\n\n📋 %s\n📅 %s в %s", target.ID, target.Date, newTime)
	if slots.Guests != "" {
		text += fmt.Sprintf("\n👥 Гостей: %s", slots.Guests)
	}
	return []reply{textReply(text)}
}

// handleMenu renders the active menu, optionally for one category.
func (b *Bot) handleMenu(ctx context.Context, category string) []reply {
	items, err := b.repos.Menu.ListActive(ctx, category)
	if err != nil {
		logger.Error.Errorf("bot: read menu: %v", err)
		return []reply{textReply("Меню временно недоступно 🤷")}
	}
	if len(items) == 0 {
		return []reply{textReply("Меню временно недоступно 🤷")}
	}
	return []reply{textReply(menuText(items))}
}

// handleOrder attaches pre-order lines to the caller's booking.  The
// first confirmed booking returned for the phone is used.  Items are
// matched against the menu one by one; unmatched names are reported
// back while matched ones are ordered — the operation is deliberately
// partial, never all-or-nothing.
func (b *Bot) handleOrder(ctx context.Context, slots model.Slots) []reply {
	if slots.Phone == "" {
		return []reply{textReply(replyPhoneNeeded)}
	}
	bookings, err := b.repos.Bookings.FindConfirmedByPhone(ctx, slots.Phone)
	if err != nil {
		logger.Error.Errorf("bot: find bookings by phone: %v", err)
		return []reply{textReply(replyStoreFailure)}
	}
	if len(bookings) == 0 {
		return []reply{textReply("Сначала забронируйте столик! 😊")}
	}
	booking := bookings[0]

	if len(slots.Items) == 0 {
		return []reply{textReply("Что именно хотите заказать? Могу показать меню!")}
	}
	menu, err := b.repos.Menu.ListActive(ctx, "")
	if err != nil {
		logger.Error.Errorf("bot: read menu: %v", err)
		return []reply{textReply("Меню временно недоступно 🤷")}
	}

	var (
		created   []string
		unmatched []string
		total     int
	)
	for _, item := range slots.Items {
		menuItem := matchMenuItem(menu, item.Name)
		if menuItem == nil {
			unmatched = append(unmatched, item.Name)
			continue
		}
		linePrice := menuItem.Price * item.Quantity
		orderID, err := b.repos.Orders.Create(ctx, booking.ID, menuItem.Name, item.Quantity, linePrice)
		if err != nil {
			logger.Error.Errorf("bot: create order for booking %s: %v", booking.ID, err)
			return []reply{textReply("Не получилось сохранить заказ. Позвоните нам напрямую!")}
		}
		_ = queue_publisher.PublishOrderPlaced(ctx, queue.OrderPlacedEvent{
			OrderID:   orderID,
			BookingID: booking.ID,
			ItemName:  menuItem.Name,
			Quantity:  item.Quantity,
			PriceRub:  linePrice,
			PlacedAt:  time.Now().Format("2006-01-02 15:04"),
		})
		created = append(created, fmt.Sprintf("%s x%d — %d ₽", menuItem.Name, item.Quantity, linePrice))
		total += linePrice
	}

	if len(created) == 0 {
		return []reply{textReply("Не удалось найти указанные позиции в меню. Проверьте название или посмотрите меню: /menu")}
	}
	text := fmt.Sprintf("✅ Заказ оформлен к брони %s:\n\n", booking.ID)
	text += strings.Join(created, "\n")
	text += fmt.Sprintf("\n\n💰 Итого: %d ₽", total)
	if len(unmatched) > 0 {
		text += fmt.Sprintf("\n\n🤷 Не нашли в меню: %s", strings.Join(unmatched, ", "))
	}
	text += "\n\nПриготовим к вашему приходу!"
	return []reply{textReply(text)}
}

// pickBooking selects the booking a cancel/modify turn acts on: the
// only one, or the one matching an explicitly supplied id.  The second
// return is false when the guest still has to disambiguate.
func pickBooking(bookings []model.Booking, explicitID string) (model.Booking, bool) {
	if explicitID != "" {
		for _, b := range bookings {
			if strings.EqualFold(b.ID, explicitID) {
				return b, true
			}
		}
		return model.Booking{}, false
	}
	if len(bookings) == 1 {
		return bookings[0], true
	}
	return model.Booking{}, false
}
