package services

import (
	"encoding/json"
	"strings"

	"sereno/models"
)

// Severity band labels. PHQ-9 uses none..severe, GAD-7 minimal..severe.
const (
	SeverityNone             = "none"
	SeverityMinimal          = "minimal"
	SeverityMild             = "mild"
	SeverityModerate         = "moderate"
	SeverityModeratelySevere = "moderately_severe"
	SeveritySevere           = "severe"
)

// Any trauma/safety screening answer at or above this value flags the
// assessment for review. 3 is the top of the 0..3 frequency scale and the top
// band of the 1..5 scale, so the rule is conservative for both.
const safetyReviewThreshold = 3

var phq9Keys = []string{"phq1", "phq2", "phq3", "phq4", "phq5", "phq6", "phq7", "phq8", "phq9"}
var gad7Keys = []string{"gad1", "gad2", "gad3", "gad4", "gad5", "gad6", "gad7"}

// numericValue coerces the loosely-typed answer values that arrive through
// JSON or BSON decoding. Anything non-numeric is reported absent.
func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// sumItems adds the numeric answers at the given keys. The second return is
// false when none of the keys carried a numeric value, which callers use to
// distinguish "not administered" from an all-zero administration.
func sumItems(answers map[string]interface{}, keys []string) (int, bool) {
	total := 0.0
	present := false
	for _, key := range keys {
		v, ok := answers[key]
		if !ok {
			continue
		}
		n, ok := numericValue(v)
		if !ok {
			continue
		}
		present = true
		total += n
	}
	return int(total), present
}

func phq9SeverityBand(score int) string {
	switch {
	case score <= 4:
		return SeverityNone
	case score <= 9:
		return SeverityMild
	case score <= 14:
		return SeverityModerate
	case score <= 19:
		return SeverityModeratelySevere
	default:
		return SeveritySevere
	}
}

func gad7SeverityBand(score int) string {
	switch {
	case score <= 4:
		return SeverityMinimal
	case score <= 9:
		return SeverityMild
	case score <= 14:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// hasElevatedSafetyItem reports whether any trauma/safety screening answer
// reached the review threshold.
func hasElevatedSafetyItem(answers map[string]interface{}) bool {
	for key, v := range answers {
		if !strings.HasPrefix(key, "trauma") && !strings.HasPrefix(key, "safety") {
			continue
		}
		if n, ok := numericValue(v); ok && n >= safetyReviewThreshold {
			return true
		}
	}
	return false
}

// Score computes the deterministic clinical result for one answer mapping.
// It is a total function: malformed values are treated as absent and never
// abort scoring.
//
// suicidal triggers on ANY non-zero phq9 answer. A response of "several days"
// to the self-harm item is a positive signal; only zero is negative.
func Score(answers map[string]interface{}) models.ScoreResult {
	var result models.ScoreResult

	if sum, ok := sumItems(answers, phq9Keys); ok {
		severity := phq9SeverityBand(sum)
		result.Phq9Score = &sum
		result.Phq9Severity = &severity
	}
	if sum, ok := sumItems(answers, gad7Keys); ok {
		severity := gad7SeverityBand(sum)
		result.Gad7Score = &sum
		result.Gad7Severity = &severity
	}

	if v, ok := answers["phq9"]; ok {
		if n, numOk := numericValue(v); numOk && n >= 1 {
			result.Suicidal = true
		}
	}

	result.HighRisk = result.Suicidal ||
		(result.Phq9Severity != nil && *result.Phq9Severity == SeveritySevere) ||
		(result.Gad7Severity != nil && *result.Gad7Severity == SeveritySevere)

	result.NeedsReview = result.HighRisk ||
		result.Phq9Score == nil ||
		result.Gad7Score == nil ||
		hasElevatedSafetyItem(answers)

	return result
}

// AnswersToMap flattens an answer list into the questionId-keyed mapping the
// scorer consumes. The first value wins on duplicate ids.
func AnswersToMap(answers []models.Answer) map[string]interface{} {
	m := make(map[string]interface{}, len(answers))
	for _, a := range answers {
		if a.QuestionID == "" {
			continue
		}
		if _, exists := m[a.QuestionID]; exists {
			continue
		}
		m[a.QuestionID] = a.Value
	}
	return m
}
