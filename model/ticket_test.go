package model

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func TestAnswerRoundTrip(t *testing.T) {
	tickets := []*Ticket{
		{
			ID:     "t1",
			UserID: "42",
			Status: TicketOpen,
			Answers: map[string]Answer{
				"q1": TextAnswer("hello"),
				"q2": ChoiceAnswer([]string{"B"}),
				"q3": ChoiceAnswer(nil),
			},
		},
	}
	b, err := jsoniter.Marshal(tickets)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded []*Ticket
	if err := jsoniter.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	answers := decoded[0].Answers
	if answers["q1"].Text != "hello" || answers["q1"].Choices != nil {
		t.Fatalf("expected text answer, got %+v", answers["q1"])
	}
	if len(answers["q2"].Choices) != 1 || answers["q2"].Choices[0] != "B" {
		t.Fatalf("expected choice answer [B], got %+v", answers["q2"])
	}
	if answers["q3"].Choices == nil || len(answers["q3"].Choices) != 0 {
		t.Fatalf("expected explicit empty choice answer, got %+v", answers["q3"])
	}
}

func TestAnswerWireShape(t *testing.T) {
	b, err := jsoniter.Marshal(TextAnswer("hi"))
	if err != nil {
		t.Fatalf("marshal text: %v", err)
	}
	if string(b) != `"hi"` {
		t.Fatalf("expected bare string, got %s", b)
	}
	b, err = jsoniter.Marshal(ChoiceAnswer([]string{"X", "Y"}))
	if err != nil {
		t.Fatalf("marshal choices: %v", err)
	}
	if string(b) != `["X","Y"]` {
		t.Fatalf("expected array, got %s", b)
	}
}

func TestQuestionBoundsDefaults(t *testing.T) {
	q := Question{ID: "q", Type: QuestionMultipleChoice, Options: []string{"a", "b", "c"}}
	if q.Min() != 1 {
		t.Fatalf("expected default min 1, got %d", q.Min())
	}
	if q.Max() != 3 {
		t.Fatalf("expected default max 3, got %d", q.Max())
	}
	zero := 0
	two := 2
	q.MinChoices = &zero
	q.MaxChoices = &two
	if q.Min() != 0 || q.Max() != 2 {
		t.Fatalf("expected explicit bounds [0, 2], got [%d, %d]", q.Min(), q.Max())
	}
}
