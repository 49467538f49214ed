package interview

import (
	"fmt"
	"strings"

	"github.com/snakecharmers/boabot/common"
	"github.com/snakecharmers/boabot/model"
	"github.com/snakecharmers/boabot/pkg/log"
	"github.com/snakecharmers/boabot/platform"
)

// TicketOps is the slice of the ticket registry the sequencer needs. It never
// touches storage directly: lookups and the mutate-and-persist step go
// through these operations.
type TicketOps interface {
	FindOpen(userID string) *model.Ticket
	Update(userID string, fn func(*model.Ticket)) error
}

// Texts holds the fixed fragments appended to question prompts per type.
type Texts struct {
	OpenQuestion   string
	SingleChoice   string
	MultipleChoice string
}

// Sequencer walks a user through the configured questions: it derives the
// next unanswered question from the ticket's answers, renders it, and commits
// finalized answers. State is re-derived from the answer set on every event,
// so the flow survives restarts; only in-flight multi-choice selections live
// in the transient session table.
type Sequencer struct {
	questions []model.Question
	texts     Texts
	tickets   TicketOps
	messenger platform.Messenger
	sessions  *sessionTable
}

func NewSequencer(questions []model.Question, texts Texts, tickets TicketOps, messenger platform.Messenger) *Sequencer {
	return &Sequencer{
		questions: questions,
		texts:     texts,
		tickets:   tickets,
		messenger: messenger,
		sessions:  newSessionTable(),
	}
}

// NextQuestion returns the first configured question the ticket has no answer
// for, or nil when the interview is complete. The configured order is
// authoritative; answered ids are skipped wherever they sit.
func (s *Sequencer) NextQuestion(t *model.Ticket) *model.Question {
	if t == nil {
		return nil
	}
	for i := range s.questions {
		if _, answered := t.Answers[s.questions[i].ID]; !answered {
			return &s.questions[i]
		}
	}
	return nil
}

// Advance renders the user's next unanswered question. With none left the
// interview is complete and nothing further happens.
func (s *Sequencer) Advance(userID string) error {
	q := s.NextQuestion(s.tickets.FindOpen(userID))
	if q == nil {
		log.Info("all questions answered for user %v", userID)
		return nil
	}
	switch q.Type {
	case model.QuestionOpen:
		return s.messenger.SendPrivate(userID, q.Message+s.texts.OpenQuestion)
	case model.QuestionSingleChoice:
		elements := make([]platform.Element, 0, len(q.Options))
		for _, opt := range q.Options {
			elements = append(elements, platform.Element{
				ID:    singleControlID(q.ID, opt),
				Label: opt,
				Style: platform.StylePrimary,
			})
		}
		_, err := s.messenger.RenderChoices(userID, q.Message+s.texts.SingleChoice, elements)
		return err
	case model.QuestionMultipleChoice:
		ref, err := s.messenger.RenderChoices(userID, q.Message+s.texts.MultipleChoice, s.multiElements(q, nil))
		if err != nil {
			return err
		}
		s.sessions.put(userID, q.ID, &session{message: ref})
		return nil
	}
	return fmt.Errorf("question %v: unknown type %v", q.ID, q.Type)
}

// multiElements projects a selection onto the rendered toggle set. The
// finalize control appears once the selection reaches the minimum; a
// skippable question with nothing selected gets the distinct skip control
// instead.
func (s *Sequencer) multiElements(q *model.Question, selected []string) []platform.Element {
	elements := make([]platform.Element, 0, len(q.Options)+1)
	for _, opt := range q.Options {
		style := platform.StyleDanger
		if common.SliceIndex(selected, opt) >= 0 {
			style = platform.StyleSuccess
		}
		elements = append(elements, platform.Element{
			ID:    multiControlID(q.ID, opt),
			Label: opt,
			Style: style,
		})
	}
	if q.Min() == 0 && len(selected) == 0 {
		elements = append(elements, platform.Element{
			ID:    multiControlID(q.ID, wordDone),
			Label: "skip",
			Style: platform.StyleSecondary,
		})
	} else if len(selected) >= q.Min() {
		elements = append(elements, platform.Element{
			ID:    multiControlID(q.ID, wordNext),
			Label: "next",
			Style: platform.StylePrimary,
		})
	}
	return elements
}

// pending returns the question the control addresses, provided it is the
// user's current next question of the expected type. Anything else is a stale
// or foreign element and yields nil.
func (s *Sequencer) pending(userID string, questionID string, typ model.QuestionType) *model.Question {
	q := s.NextQuestion(s.tickets.FindOpen(userID))
	if q == nil || q.ID != questionID || q.Type != typ {
		return nil
	}
	return q
}

// HandleControl routes a decoded question control. Controls that do not match
// the user's pending question are dropped without a user-visible error.
func (s *Sequencer) HandleControl(c Control, i platform.Interaction) error {
	switch c.Kind {
	case ControlSingleChoice:
		return s.handleSingle(c, i)
	case ControlMultiToggle:
		return s.handleMultiToggle(c, i)
	case ControlMultiNext:
		return s.handleMultiFinalize(c, i, false)
	case ControlMultiDone:
		return s.handleMultiFinalize(c, i, true)
	}
	return nil
}

func (s *Sequencer) handleSingle(c Control, i platform.Interaction) error {
	q := s.pending(i.UserID, c.QuestionID, model.QuestionSingleChoice)
	if q == nil || common.SliceIndex(q.Options, c.Option) < 0 {
		return nil
	}
	// the answer must hit disk before any further platform I/O
	if err := s.tickets.Update(i.UserID, func(t *model.Ticket) {
		t.Answers[q.ID] = model.TextAnswer(c.Option)
	}); err != nil {
		return fmt.Errorf("commit answer %v for user %v: %w", q.ID, i.UserID, err)
	}
	if err := s.messenger.EditChoices(i.Message, "Selected: "+c.Option, nil); err != nil {
		log.Warn("edit single-choice message for %v: %v", i.UserID, err)
	}
	if err := s.messenger.Respond(i, ""); err != nil {
		log.Warn("respond to %v: %v", i.UserID, err)
	}
	return s.Advance(i.UserID)
}

func (s *Sequencer) handleMultiToggle(c Control, i platform.Interaction) error {
	q := s.pending(i.UserID, c.QuestionID, model.QuestionMultipleChoice)
	if q == nil || common.SliceIndex(q.Options, c.Option) < 0 {
		return nil
	}
	sess := s.sessions.get(i.UserID, q.ID)
	if sess == nil {
		// rendered before a restart; selection starts over on this message
		sess = &session{message: i.Message}
		s.sessions.put(i.UserID, q.ID, sess)
	}
	changed := true
	if common.SliceIndex(sess.selected, c.Option) >= 0 {
		sess.selected = common.SliceRemove(sess.selected, c.Option)
	} else if len(sess.selected) < q.Max() {
		sess.selected = append(sess.selected, c.Option)
	} else {
		// at the cap; adding is a no-op, removing is always allowed
		changed = false
	}
	if changed {
		if err := s.messenger.EditChoices(sess.message, q.Message+s.texts.MultipleChoice, s.multiElements(q, sess.selected)); err != nil {
			log.Warn("edit multi-choice message for %v: %v", i.UserID, err)
		}
	}
	if err := s.messenger.Respond(i, ""); err != nil {
		log.Warn("respond to %v: %v", i.UserID, err)
	}
	return nil
}

func (s *Sequencer) handleMultiFinalize(c Control, i platform.Interaction, skip bool) error {
	q := s.pending(i.UserID, c.QuestionID, model.QuestionMultipleChoice)
	if q == nil {
		return nil
	}
	var selected []string
	if sess := s.sessions.get(i.UserID, q.ID); sess != nil {
		selected = sess.selected
	}
	if skip {
		if q.Min() != 0 || len(selected) != 0 {
			return nil
		}
	} else if len(selected) < q.Min() || len(selected) > q.Max() {
		return nil
	}
	if err := s.tickets.Update(i.UserID, func(t *model.Ticket) {
		t.Answers[q.ID] = model.ChoiceAnswer(selected)
	}); err != nil {
		return fmt.Errorf("commit answer %v for user %v: %w", q.ID, i.UserID, err)
	}
	s.sessions.drop(i.UserID, q.ID)
	summary := "Selected: none"
	if len(selected) > 0 {
		summary = "Selected: " + strings.Join(selected, ", ")
	}
	if err := s.messenger.EditChoices(i.Message, summary, nil); err != nil {
		log.Warn("edit multi-choice message for %v: %v", i.UserID, err)
	}
	if err := s.messenger.Respond(i, ""); err != nil {
		log.Warn("respond to %v: %v", i.UserID, err)
	}
	return s.Advance(i.UserID)
}

// HandleMessage consumes a plain private message as the answer to the user's
// pending open question. Messages arriving while no open question is pending
// are ignored so stray chat never becomes an answer.
func (s *Sequencer) HandleMessage(userID string, text string) error {
	t := s.tickets.FindOpen(userID)
	q := s.NextQuestion(t)
	if q == nil || q.Type != model.QuestionOpen {
		return nil
	}
	if err := s.tickets.Update(userID, func(t *model.Ticket) {
		t.Answers[q.ID] = model.TextAnswer(text)
	}); err != nil {
		return fmt.Errorf("commit answer %v for user %v: %w", q.ID, userID, err)
	}
	return s.Advance(userID)
}

// Abort discards any in-flight selection state the user holds, typically on
// cancellation.
func (s *Sequencer) Abort(userID string) {
	s.sessions.dropUser(userID)
}
