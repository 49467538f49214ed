// Package telegram adapts the platform capability surface onto the Telegram
// Bot API via telebot. Callback data carries the raw control identifiers;
// selected toggle options are marked in the button label since Telegram has
// no button styling.
package telegram

import (
	"strconv"
	"strings"
	"time"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/snakecharmers/boabot/db"
	"github.com/snakecharmers/boabot/model"
	"github.com/snakecharmers/boabot/pkg/log"
	"github.com/snakecharmers/boabot/platform"
)

// Handler receives the decoded platform activity.
type Handler interface {
	HandleInteraction(i platform.Interaction)
	HandleMessage(userID string, text string)
	HandleCancel(userID string, private bool) string
}

type Bot struct {
	tb *tb.Bot
	// intake remembers the posted intake message across restarts. The Bot API
	// exposes no channel history to bots, so idempotence comes from this
	// durable reference instead of a startup scan.
	intake *db.Store[platform.MessageRef]
}

func New(token string) (*Bot, error) {
	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: 15 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	intake, err := db.NewStore[platform.MessageRef](model.BucketIntake, nil)
	if err != nil {
		return nil, err
	}
	return &Bot{tb: b, intake: intake}, nil
}

// Run registers the event handlers and blocks on long polling.
func (b *Bot) Run(h Handler) {
	b.tb.Handle(tb.OnCallback, func(c *tb.Callback) {
		if c.Sender == nil {
			return
		}
		h.HandleInteraction(platform.Interaction{
			UserID:    strconv.FormatInt(c.Sender.ID, 10),
			ControlID: strings.TrimSpace(c.Data),
			Message:   refOf(c.Message),
			Raw:       c,
		})
	})
	b.tb.Handle("/cancel", func(m *tb.Message) {
		if m.Sender == nil {
			return
		}
		reply := h.HandleCancel(strconv.FormatInt(m.Sender.ID, 10), m.Private())
		if _, err := b.tb.Send(m.Chat, reply); err != nil {
			log.Warn("reply to /cancel from %v: %v", m.Sender.ID, err)
		}
	})
	b.tb.Handle("/ping", func(m *tb.Message) {
		if _, err := b.tb.Send(m.Chat, "Pong!"); err != nil {
			log.Warn("reply to /ping: %v", err)
		}
	})
	b.tb.Handle(tb.OnText, func(m *tb.Message) {
		if m.Sender == nil || !m.Private() {
			return
		}
		h.HandleMessage(strconv.FormatInt(m.Sender.ID, 10), m.Text)
	})
	log.Info("bot connected, polling for updates")
	b.tb.Start()
}

func (b *Bot) SendPrivate(userID string, text string) error {
	_, err := b.tb.Send(recipient(userID), text)
	return err
}

func (b *Bot) RenderChoices(userID string, text string, elements []platform.Element) (platform.MessageRef, error) {
	m, err := b.tb.Send(recipient(userID), text, keyboard(elements))
	if err != nil {
		return platform.MessageRef{}, err
	}
	return refOf(m), nil
}

func (b *Bot) EditChoices(ref platform.MessageRef, text string, elements []platform.Element) error {
	_, err := b.tb.Edit(editable(ref), text, keyboard(elements))
	return err
}

func (b *Bot) Respond(i platform.Interaction, text string) error {
	c, ok := i.Raw.(*tb.Callback)
	if !ok {
		return nil
	}
	return b.tb.Respond(c, &tb.CallbackResponse{Text: text})
}

func (b *Bot) EnsureIntake(channelID int64, text string, label string, controlID string) error {
	if len(b.intake.Data) > 0 && b.intake.Data[0].ChatID == channelID && !b.intake.Data[0].IsZero() {
		log.Info("reusing intake message %v in channel %v", b.intake.Data[0].MessageID, channelID)
		return nil
	}
	m, err := b.tb.Send(&tb.Chat{ID: channelID}, text, keyboard([]platform.Element{{
		ID:    controlID,
		Label: label,
		Style: platform.StyleSuccess,
	}}))
	if err != nil {
		return err
	}
	b.intake.Data = []platform.MessageRef{refOf(m)}
	if err := b.intake.Sync(); err != nil {
		return err
	}
	log.Info("posted intake message %v to channel %v", m.ID, channelID)
	return nil
}

// recipient addresses a user's private chat by id.
type recipient string

func (r recipient) Recipient() string {
	return string(r)
}

// editable satisfies tb.Editable for messages rendered earlier.
type editable platform.MessageRef

func (e editable) MessageSig() (messageID string, chatID int64) {
	return e.MessageID, e.ChatID
}

func refOf(m *tb.Message) platform.MessageRef {
	if m == nil {
		return platform.MessageRef{}
	}
	return platform.MessageRef{
		ChatID:    m.Chat.ID,
		MessageID: strconv.Itoa(m.ID),
	}
}

func keyboard(elements []platform.Element) *tb.ReplyMarkup {
	rows := make([][]tb.InlineButton, 0, len(elements))
	for _, el := range elements {
		rows = append(rows, []tb.InlineButton{{
			Data: el.ID,
			Text: label(el),
		}})
	}
	return &tb.ReplyMarkup{InlineKeyboard: rows}
}

func label(el platform.Element) string {
	if el.Style == platform.StyleSuccess {
		return "✅ " + el.Label
	}
	return el.Label
}
