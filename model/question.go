package model

type QuestionType string

const (
	QuestionOpen           QuestionType = "open"
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
)

func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionOpen, QuestionSingleChoice, QuestionMultipleChoice:
		return true
	}
	return false
}

func (t QuestionType) HasOptions() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

// Question is a static interview step loaded from configuration. The order of
// the configured sequence defines presentation order.
type Question struct {
	ID      string       `yaml:"id" json:"id"`
	Type    QuestionType `yaml:"type" json:"type"`
	Message string       `yaml:"message" json:"message"`
	Options []string     `yaml:"options,omitempty" json:"options,omitempty"`

	// MinChoices defaults to 1 when absent; zero makes the question skippable.
	MinChoices *int `yaml:"min_choices,omitempty" json:"min_choices,omitempty"`
	// MaxChoices defaults to the option count when absent.
	MaxChoices *int `yaml:"max_choices,omitempty" json:"max_choices,omitempty"`
}

func (q *Question) Min() int {
	if q.MinChoices == nil {
		return 1
	}
	return *q.MinChoices
}

func (q *Question) Max() int {
	if q.MaxChoices == nil {
		return len(q.Options)
	}
	return *q.MaxChoices
}
