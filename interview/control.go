package interview

import (
	"fmt"
	"strings"

	"github.com/snakecharmers/boabot/model"
)

// IntakeControlID is the fixed identifier of the persistent intake button.
const IntakeControlID = "request_boa_button"

const (
	delimiter    = "_"
	prefixSingle = "single"
	prefixMulti  = "multi"
	wordNext     = "next"
	wordDone     = "done"
)

type ControlKind int

const (
	// ControlIntake is the primary intake affordance.
	ControlIntake ControlKind = iota
	// ControlSingleChoice finalizes a single-choice question with Option.
	ControlSingleChoice
	// ControlMultiToggle flips Option's membership in the current selection.
	ControlMultiToggle
	// ControlMultiNext finalizes a multi-choice selection.
	ControlMultiNext
	// ControlMultiDone finalizes an empty, skippable multi-choice question.
	ControlMultiDone
)

// Control is an interactive-element identifier decoded once at the platform
// boundary. Everything downstream matches on Kind instead of re-parsing
// strings.
type Control struct {
	Kind       ControlKind
	QuestionID string
	Option     string
}

// ParseControl decodes a raw element identifier. Unknown or malformed input
// reports ok=false; callers drop such events silently since they usually come
// from stale or foreign elements.
func ParseControl(raw string) (c Control, ok bool) {
	if raw == IntakeControlID {
		return Control{Kind: ControlIntake}, true
	}
	parts := strings.SplitN(raw, delimiter, 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Control{}, false
	}
	switch parts[0] {
	case prefixSingle:
		return Control{Kind: ControlSingleChoice, QuestionID: parts[1], Option: parts[2]}, true
	case prefixMulti:
		switch parts[2] {
		case wordNext:
			return Control{Kind: ControlMultiNext, QuestionID: parts[1]}, true
		case wordDone:
			return Control{Kind: ControlMultiDone, QuestionID: parts[1]}, true
		default:
			return Control{Kind: ControlMultiToggle, QuestionID: parts[1], Option: parts[2]}, true
		}
	}
	return Control{}, false
}

func singleControlID(questionID, option string) string {
	return prefixSingle + delimiter + questionID + delimiter + option
}

func multiControlID(questionID, option string) string {
	return prefixMulti + delimiter + questionID + delimiter + option
}

// ValidateQuestions checks the configured interview at startup: ids must be
// unique, non-empty and delimiter-free (they are embedded in control
// identifiers), choice questions need options that avoid the reserved
// finalize words, and choice bounds must be coherent.
func ValidateQuestions(questions []model.Question) error {
	seen := make(map[string]struct{}, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			return fmt.Errorf("question %d: empty id", i)
		}
		if strings.Contains(q.ID, delimiter) {
			return fmt.Errorf("question %q: id must not contain %q", q.ID, delimiter)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !q.Type.IsValid() {
			return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
		}
		if !q.Type.HasOptions() {
			continue
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: %v question needs options", q.ID, q.Type)
		}
		for _, opt := range q.Options {
			if opt == "" {
				return fmt.Errorf("question %q: empty option", q.ID)
			}
			if strings.Contains(opt, delimiter) {
				return fmt.Errorf("question %q: option %q must not contain %q", q.ID, opt, delimiter)
			}
			if q.Type == model.QuestionMultipleChoice && (opt == wordNext || opt == wordDone) {
				return fmt.Errorf("question %q: option %q is reserved", q.ID, opt)
			}
		}
		if q.Min() < 0 || q.Min() > q.Max() || q.Max() > len(q.Options) {
			return fmt.Errorf("question %q: choice bounds [%d, %d] out of range for %d options",
				q.ID, q.Min(), q.Max(), len(q.Options))
		}
	}
	return nil
}
