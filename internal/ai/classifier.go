// Package ai turns free-form guest messages into typed intents using a
// Gemini call.  The model is instructed to answer with a single JSON
// object; anything that fails — transport, quota, malformed output —
// degrades to an apologetic "other" intent so message handling never
// crashes on the classifier.
package ai

import (
	"context"
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/KoponovVadim/qrim/internal/logger"
	"github.com/KoponovVadim/qrim/internal/model"
	"github.com/KoponovVadim/qrim/internal/session"
)

// contextTurns is how many recent conversation turns accompany the
// message being classified.
const contextTurns = 6

const systemPrompt = `Ты — менеджер кальянной QRIM Lounge. Твоя задача — определить намерение пользователя и извлечь данные.

Возможные интенты:
- info: вопросы об адресе, графике, контактах
- book: бронирование стола
- events: афиша, мероприятия
- prices: прайс, цены на кальяны и напитки
- cancel: отмена брони
- modify: изменение брони (время или число гостей)
- menu: меню, позиции и напитки
- order: предзаказ позиций из меню
- other: всё остальное

Если intent=book, извлеки slots:
- date (формат YYYY-MM-DD)
- time (формат HH:MM)
- guests (число)
- name (имя клиента)
- phone (телефон)

Если intent=cancel или modify, извлеки slots: phone, booking_id (например, B0001), time, guests.
Если intent=menu, извлеки slots: category.
Если intent=order, извлеки slots: phone и items — массив объектов {"name": ..., "quantity": ...}.

Отвечай ТОЛЬКО в JSON формате:
{
  "intent": "info|book|events|prices|cancel|modify|menu|order|other",
  "slots": {},
  "response_text": "текст ответа пользователю"
}

Будь вежливым и кратким. Используй эмодзи умеренно.`

// Fallback replies, matching the two failure modes: the model answered
// but not in the agreed format, and the call itself failed.
const (
	fallbackUnparsed = "Извините, не совсем понял ваш вопрос. Могу помочь с бронированием, рассказать о заведении или показать афишу 😊"
	fallbackFailure  = "Извините, возникла техническая проблема. Попробуйте ещё раз через минуту."
)

// Classifier calls Gemini with the venue system prompt and recent
// conversation context.
type Classifier struct {
	client *genai.Client
	model  string
}

// NewClassifier creates the underlying Gemini client.
func NewClassifier(ctx context.Context, apiKey, modelName string) (*Classifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Classifier{client: client, model: modelName}, nil
}

// Classify returns the typed intent for a message.  It never returns an
// error: every failure maps to IntentOther with a safe reply.
func (c *Classifier) Classify(ctx context.Context, text string, history []session.Turn) model.Intent {
	contents := buildContents(text, history)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   500,
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		logger.Error.Errorf("ai: generate content: %v", err)
		return model.Intent{Kind: model.IntentOther, Reply: fallbackFailure}
	}
	raw := resp.Text()
	intent, ok := parseIntent(raw)
	if !ok {
		logger.Error.Errorf("ai: unparseable model output: %q", raw)
		return model.Intent{Kind: model.IntentOther, Reply: fallbackUnparsed}
	}
	return intent
}

// buildContents assembles the recent window plus the current message.
// Assistant turns use the "model" role Gemini expects.
func buildContents(text string, history []session.Turn) []*genai.Content {
	if len(history) > contextTurns {
		history = history[len(history)-contextTurns:]
	}
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.RoleUser
		if t.Role == session.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Content}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: text}},
	})
	return contents
}

// parseIntent decodes the model's JSON answer.  When the model wraps
// the object in prose despite the instructions, the substring between
// the first "{" and the last "}" is tried as a rescue before giving up.
func parseIntent(raw string) (model.Intent, bool) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return model.Intent{}, false
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
			return model.Intent{}, false
		}
	}
	return p.toIntent(), true
}

// payload mirrors the JSON contract with the model.  Slot values arrive
// as strings or numbers depending on the model's mood, so they are
// decoded through flexible types.
type payload struct {
	Intent       string       `json:"intent"`
	Slots        payloadSlots `json:"slots"`
	ResponseText string       `json:"response_text"`
}

type payloadSlots struct {
	Date      flexString    `json:"date"`
	Time      flexString    `json:"time"`
	Guests    flexString    `json:"guests"`
	Name      flexString    `json:"name"`
	Phone     flexString    `json:"phone"`
	Category  flexString    `json:"category"`
	BookingID flexString    `json:"booking_id"`
	Items     []payloadItem `json:"items"`
}

type payloadItem struct {
	Name     string  `json:"name"`
	Quantity flexInt `json:"quantity"`
}

func (p payload) toIntent() model.Intent {
	intent := model.Intent{
		Kind:  kindFromString(p.Intent),
		Reply: p.ResponseText,
		Slots: model.Slots{
			Date:      string(p.Slots.Date),
			Time:      string(p.Slots.Time),
			Guests:    string(p.Slots.Guests),
			Name:      string(p.Slots.Name),
			Phone:     string(p.Slots.Phone),
			Category:  string(p.Slots.Category),
			BookingID: string(p.Slots.BookingID),
		},
	}
	for _, it := range p.Slots.Items {
		if it.Name == "" {
			continue
		}
		qty := int(it.Quantity)
		if qty <= 0 {
			qty = 1
		}
		intent.Slots.Items = append(intent.Slots.Items, model.RequestedItem{Name: it.Name, Quantity: qty})
	}
	return intent
}

// kindFromString maps the model's intent string onto the typed kind;
// anything unexpected becomes IntentOther.
func kindFromString(s string) model.IntentKind {
	switch model.IntentKind(strings.ToLower(strings.TrimSpace(s))) {
	case model.IntentInfo:
		return model.IntentInfo
	case model.IntentBook:
		return model.IntentBook
	case model.IntentEvents:
		return model.IntentEvents
	case model.IntentPrices:
		return model.IntentPrices
	case model.IntentCancel:
		return model.IntentCancel
	case model.IntentModify:
		return model.IntentModify
	case model.IntentMenu:
		return model.IntentMenu
	case model.IntentOrder:
		return model.IntentOrder
	default:
		return model.IntentOther
	}
}
