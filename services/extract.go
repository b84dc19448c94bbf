package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"sereno/models"
)

// Markers the prompts instruct the model to wrap its JSON payload in
const (
	jsonStartMarker = "<<JSON>>"
	jsonEndMarker   = "<<JSON_END>>"
)

// extractMarkedJSON returns the text between the JSON markers, or "" when
// either marker is missing.
func extractMarkedJSON(raw string) string {
	start := strings.Index(raw, jsonStartMarker)
	if start < 0 {
		return ""
	}
	rest := raw[start+len(jsonStartMarker):]
	end := strings.Index(rest, jsonEndMarker)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

// extractJSONBlock locates a JSON payload in untrusted model output: marker
// pair first, then a greedy first-{ to last-} match. Returns "" when neither
// is present.
func extractJSONBlock(raw string) string {
	if block := extractMarkedJSON(raw); block != "" {
		return block
	}
	open := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if open >= 0 && end > open {
		return raw[open : end+1]
	}
	return ""
}

// ExtractQuestionSet normalizes raw model output into a validated question
// set, truncated to maxQuestions. Returns nil on any malformation (missing
// payload, parse failure, missing/empty questions array); callers treat nil
// as the signal to use the fallback catalog. It never propagates an error.
func ExtractQuestionSet(raw string, maxQuestions int) []models.Question {
	block := extractJSONBlock(raw)
	if block == "" {
		return nil
	}

	var payload struct {
		Questions []map[string]interface{} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return nil
	}
	// An empty set is as useless downstream as a missing one
	if len(payload.Questions) == 0 {
		return nil
	}

	items := payload.Questions
	if maxQuestions > 0 && len(items) > maxQuestions {
		items = items[:maxQuestions]
	}

	questions := make([]models.Question, 0, len(items))
	for i, item := range items {
		q := models.Question{
			ID:    strings.ToLower(stringField(item, "id")),
			Type:  stringField(item, "type"),
			Title: stringField(item, "title"),
			Hint:  stringField(item, "hint"),
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q_%d", i)
		}
		if q.Type == "" {
			q.Type = models.QuestionTypeText
		}
		// Bounds come from the normalized type, never from the model
		q.Scale = models.ScaleForType(q.Type)
		questions = append(questions, q)
	}
	return questions
}

func stringField(item map[string]interface{}, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}
