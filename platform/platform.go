// Package platform defines the slice of the chat platform the interview flow
// consumes. Adapters translate it onto a concrete chat service; tests supply
// fakes.
package platform

type Style int

const (
	StylePrimary Style = iota
	StyleSecondary
	StyleSuccess
	StyleDanger
)

// Element is one labeled interactive control inside a rendered message. ID is
// the opaque identifier reported back when the element is activated.
type Element struct {
	ID    string
	Label string
	Style Style
}

// MessageRef identifies a previously rendered message so it can be edited.
type MessageRef struct {
	ChatID    int64  `json:"chat_id"`
	MessageID string `json:"message_id"`
}

func (r MessageRef) IsZero() bool {
	return r.MessageID == ""
}

// Interaction is an "element activated" event. Raw carries the adapter's own
// event object and is handed back verbatim to Respond.
type Interaction struct {
	UserID    string
	ControlID string
	Message   MessageRef
	Raw       interface{}
}

// Messenger is the capability surface consumed by the router and sequencer.
type Messenger interface {
	// SendPrivate delivers text to the user's private channel.
	SendPrivate(userID string, text string) error
	// RenderChoices sends text with interactive elements to the user's
	// private channel and returns a reference for later edits.
	RenderChoices(userID string, text string, elements []Element) (MessageRef, error)
	// EditChoices rewrites a rendered message's content and elements in place.
	EditChoices(ref MessageRef, text string, elements []Element) error
	// Respond acknowledges an interaction without posting to the chat.
	Respond(i Interaction, text string) error
	// EnsureIntake guarantees the intake affordance exists in the channel,
	// reusing a previously posted message when one is still on record.
	EnsureIntake(channelID int64, text string, label string, controlID string) error
}
