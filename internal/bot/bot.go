// Package bot receives Telegram updates, classifies free-form messages
// and executes the venue's business actions.  It is the only place
// where intents are dispatched; everything below it is typed services
// and repositories.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/KoponovVadim/qrim/internal/dialogue"
	"github.com/KoponovVadim/qrim/internal/logger"
	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/repository"
	"github.com/KoponovVadim/qrim/internal/session"
)

// Classifier is the slice of the AI service the bot depends on.  It is
// infallible by contract: failures surface as IntentOther with a safe
// reply.
type Classifier interface {
	Classify(ctx context.Context, text string, history []session.Turn) model.Intent
}

// Repos groups the record store repositories the handlers read and
// write.  All of them must be non-nil.
type Repos struct {
	Venue    *repository.VenueRepo
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
	Prices   *repository.PriceRepo
	Menu     *repository.MenuRepo
	Orders   *repository.OrderRepo
}

// Bot glues the Telegram API to the classifier, the dialogue manager,
// the session store and the repositories.
type Bot struct {
	api        *tgbotapi.BotAPI
	classifier Classifier
	dialogue   *dialogue.Manager
	sessions   *session.Store
	repos      Repos
}

// New constructs a Bot.  The api may be nil only in tests that never
// send; classifier, dialogue manager and repositories are required.
func New(api *tgbotapi.BotAPI, classifier Classifier, dlg *dialogue.Manager, sessions *session.Store, repos Repos) *Bot {
	if classifier == nil || dlg == nil {
		panic("nil dependency passed to bot.New")
	}
	return &Bot{
		api:        api,
		classifier: classifier,
		dialogue:   dlg,
		sessions:   sessions,
		repos:      repos,
	}
}

// reply is one outbound chat message; a non-empty photoURL turns it
// into a photo with the text as caption.
type reply struct {
	text     string
	photoURL string
}

func textReply(s string) reply { return reply{text: s} }

// HandleUpdate processes a single Telegram update to completion.  All
// failures become user-facing text; nothing escapes as a panic or an
// unanswered message.
func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}
	var replies []reply
	if msg.IsCommand() {
		replies = b.handleCommand(ctx, msg.From.ID, msg.Command())
	} else {
		replies = b.handleText(ctx, msg.From.ID, msg.Text)
	}
	b.send(msg.Chat.ID, replies)
}

// handleCommand serves the three bot commands; anything else gets the
// greeting so the user sees what the bot can do.
func (b *Bot) handleCommand(ctx context.Context, userID int64, command string) []reply {
	switch command {
	case "start":
		return []reply{textReply(greetingText)}
	case "reset":
		if err := b.dialogue.Reset(ctx, userID); err != nil {
			logger.Error.Errorf("bot: reset state for user %d: %v", userID, err)
			return []reply{textReply(replyStoreFailure)}
		}
		return []reply{textReply("Диалог сброшен ✅")}
	case "menu":
		return b.handleMenu(ctx, "")
	default:
		return []reply{textReply(greetingText)}
	}
}

// handleText runs the full pipeline for a free-form message: history →
// classifier → session append → intent dispatch.
func (b *Bot) handleText(ctx context.Context, userID int64, text string) []reply {
	history := b.history(ctx, userID)
	intent := b.classifier.Classify(ctx, text, history)
	b.remember(ctx, userID, session.Turn{Role: session.RoleUser, Content: text})
	if intent.Reply != "" {
		b.remember(ctx, userID, session.Turn{Role: session.RoleAssistant, Content: intent.Reply})
	}
	return b.dispatch(ctx, userID, intent)
}

// dispatch is the exhaustive switch over intent kinds.
func (b *Bot) dispatch(ctx context.Context, userID int64, intent model.Intent) []reply {
	switch intent.Kind {
	case model.IntentInfo:
		return b.handleInfo(ctx, intent)
	case model.IntentEvents:
		return b.handleEvents(ctx)
	case model.IntentPrices:
		return b.handlePrices(ctx)
	case model.IntentBook:
		return b.handleBook(ctx, userID, intent.Slots)
	case model.IntentCancel:
		return b.handleCancel(ctx, intent.Slots)
	case model.IntentModify:
		return b.handleModify(ctx, intent.Slots)
	case model.IntentMenu:
		return b.handleMenu(ctx, intent.Slots.Category)
	case model.IntentOrder:
		return b.handleOrder(ctx, intent.Slots)
	case model.IntentOther:
		fallthrough
	default:
		if intent.Reply == "" {
			return []reply{textReply("Чем могу помочь? 😊")}
		}
		return []reply{textReply(intent.Reply)}
	}
}

// history loads the conversation window; session problems degrade to an
// empty history rather than blocking classification.
func (b *Bot) history(ctx context.Context, userID int64) []session.Turn {
	if b.sessions == nil {
		return nil
	}
	turns, err := b.sessions.History(ctx, userID)
	if err != nil {
		logger.Error.Errorf("bot: load history for user %d: %v", userID, err)
		return nil
	}
	return turns
}

// remember appends one turn to the session window, best effort.
func (b *Bot) remember(ctx context.Context, userID int64, t session.Turn) {
	if b.sessions == nil {
		return
	}
	if err := b.sessions.Append(ctx, userID, t); err != nil {
		logger.Error.Errorf("bot: append history for user %d: %v", userID, err)
	}
}

// send delivers the replies, falling back to plain text when a photo
// cannot be sent (dead image links in the events sheet are common).
func (b *Bot) send(chatID int64, replies []reply) {
	for _, r := range replies {
		if r.photoURL != "" {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(r.photoURL))
			photo.Caption = r.text
			if _, err := b.api.Send(photo); err == nil {
				continue
			} else {
				logger.Error.Errorf("bot: send photo: %v", err)
			}
		}
		if r.text == "" {
			continue
		}
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, r.text)); err != nil {
			logger.Error.Errorf("bot: send message: %v", err)
		}
	}
}
