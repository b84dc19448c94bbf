package services

import (
	"reflect"
	"testing"

	"sereno/models"
)

func TestExtractMarkedJSON(t *testing.T) {
	raw := "Here you go:\n<<JSON>>\n{\"a\":1}\n<<JSON_END>>\nthanks"
	if got := extractMarkedJSON(raw); got != "{\"a\":1}" {
		t.Errorf("Expected marker content, got %q", got)
	}

	if got := extractMarkedJSON("<<JSON>>{\"a\":1}"); got != "" {
		t.Errorf("Missing end marker must yield empty string, got %q", got)
	}
}

func TestExtractJSONBlockBraceFallback(t *testing.T) {
	raw := "Sure! {\"questions\": []} hope that helps"
	if got := extractJSONBlock(raw); got != "{\"questions\": []}" {
		t.Errorf("Expected greedy brace match, got %q", got)
	}

	if got := extractJSONBlock("no json here"); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestExtractQuestionSetRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"no payload":          "no json here",
		"unparsable":          "<<JSON>>{not json}<<JSON_END>>",
		"missing questions":   "<<JSON>>{\"items\": []}<<JSON_END>>",
		"questions non-array": "<<JSON>>{\"questions\": 5}<<JSON_END>>",
		"empty questions":     "<<JSON>>{\"questions\": []}<<JSON_END>>",
		"non-object item":     "<<JSON>>{\"questions\": [\"x\"]}<<JSON_END>>",
	}
	for name, raw := range cases {
		if got := ExtractQuestionSet(raw, 60); got != nil {
			t.Errorf("%s: expected nil, got %d questions", name, len(got))
		}
	}
}

func TestExtractQuestionSetNormalization(t *testing.T) {
	raw := `<<JSON>>{"questions": [
		{"id": "PHQ1", "type": "scale4", "title": "Item one", "scale": {"min": 0, "max": 99}},
		{"type": "scale", "title": "Item two", "hint": "pick one"},
		{"id": "open", "title": "Item three"}
	]}<<JSON_END>>`

	questions := ExtractQuestionSet(raw, 60)
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(questions))
	}

	if questions[0].ID != "phq1" {
		t.Errorf("Expected lowercased id, got %q", questions[0].ID)
	}
	if questions[0].Scale == nil || questions[0].Scale.Min != 0 || questions[0].Scale.Max != 3 {
		t.Errorf("scale4 bounds must be recomputed to {0,3}, got %+v", questions[0].Scale)
	}

	if questions[1].ID != "q_1" {
		t.Errorf("Missing id must default to q_1, got %q", questions[1].ID)
	}
	if questions[1].Scale == nil || questions[1].Scale.Min != 1 || questions[1].Scale.Max != 5 {
		t.Errorf("scale bounds must be {1,5}, got %+v", questions[1].Scale)
	}
	if questions[1].Hint != "pick one" {
		t.Errorf("Hint must pass through, got %q", questions[1].Hint)
	}

	if questions[2].Type != models.QuestionTypeText {
		t.Errorf("Missing type must default to text, got %q", questions[2].Type)
	}
	if questions[2].Scale != nil {
		t.Errorf("text questions must carry no scale, got %+v", questions[2].Scale)
	}
}

func TestExtractQuestionSetTruncates(t *testing.T) {
	raw := `<<JSON>>{"questions": [
		{"id": "a", "title": "1"}, {"id": "b", "title": "2"},
		{"id": "c", "title": "3"}, {"id": "d", "title": "4"}
	]}<<JSON_END>>`

	questions := ExtractQuestionSet(raw, 2)
	if len(questions) != 2 {
		t.Fatalf("Expected truncation to 2, got %d", len(questions))
	}
	if questions[0].ID != "a" || questions[1].ID != "b" {
		t.Error("Truncation must preserve order from the head")
	}
}

func TestExtractQuestionSetDeterministic(t *testing.T) {
	raw := `<<JSON>>{"questions": [
		{"id": "A", "type": "scale4", "title": "x"},
		{"title": "y"}
	]}<<JSON_END>>`

	first := ExtractQuestionSet(raw, 60)
	second := ExtractQuestionSet(raw, 60)
	if !reflect.DeepEqual(first, second) {
		t.Error("Validation must be deterministic for identical input")
	}
}
