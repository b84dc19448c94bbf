package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"sereno/models"
)

// answerPayloadCap bounds the serialized answers embedded in the guidance
// prompt so oversized free-text answers cannot blow up the request.
const answerPayloadCap = 3000

const suicidalRiskLabel = "suicidal ideation"

// safeGuidanceDefault is the maximally cautious result returned whenever the
// generative path is unavailable or fails. Callers cannot distinguish "no
// risk" from "analysis unavailable"; the default errs toward review.
func safeGuidanceDefault() models.GuidanceResult {
	return models.GuidanceResult{
		Severity:                 nil,
		Risks:                    []string{},
		GuidanceText:             nil,
		RecommendClinicianReview: true,
	}
}

// SynthesizeGuidance asks the model for a qualitative severity/risk narrative
// around the deterministic scores. Total function: every failure mode returns
// the safe default.
func SynthesizeGuidance(ctx context.Context, age int, answers []models.Answer, phq9Score, gad7Score *int, contextNote string) models.GuidanceResult {
	result, _ := synthesizeGuidance(ctx, age, answers, phq9Score, gad7Score, contextNote)
	return result
}

// synthesizeGuidance additionally reports whether the model produced usable
// structured output, so the reconciliation step runs only on real analyses.
func synthesizeGuidance(ctx context.Context, age int, answers []models.Answer, phq9Score, gad7Score *int, contextNote string) (models.GuidanceResult, bool) {
	if !hasModelCredential() {
		return safeGuidanceDefault(), false
	}

	prompt := buildGuidancePrompt(age, answers, phq9Score, gad7Score, contextNote)
	raw, err := generateText(ctx, prompt, guidanceTokenCap)
	if err != nil {
		log.Printf("Guidance synthesis failed, using safe default: %v", err)
		return safeGuidanceDefault(), false
	}

	block := extractMarkedJSON(raw)
	if block == "" {
		return safeGuidanceDefault(), false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return safeGuidanceDefault(), false
	}

	result := models.GuidanceResult{Risks: []string{}}
	if s, ok := payload["severity"].(string); ok && s != "" {
		result.Severity = &s
	}
	if arr, ok := payload["risks"].([]interface{}); ok {
		for _, r := range arr {
			if s, ok := r.(string); ok {
				result.Risks = append(result.Risks, s)
			}
		}
	}
	if s, ok := payload["guidanceText"].(string); ok && s != "" {
		result.GuidanceText = &s
	}
	// Success path trusts the model's own judgement, including an explicit false
	result.RecommendClinicianReview = truthy(payload["recommendClinicianReview"])
	return result, true
}

func truthy(v interface{}) bool {
	switch n := v.(type) {
	case bool:
		return n
	case string:
		return n != ""
	case float64:
		return n != 0
	case nil:
		return false
	default:
		return true
	}
}

func formatScore(score *int) string {
	if score == nil {
		return "not administered"
	}
	return strconv.Itoa(*score)
}

func buildGuidancePrompt(age int, answers []models.Answer, phq9Score, gad7Score *int, contextNote string) string {
	serialized, err := json.Marshal(answers)
	if err != nil {
		serialized = []byte("[]")
	}
	payload := string(serialized)
	if len(payload) > answerPayloadCap {
		payload = payload[:answerPayloadCap]
	}

	return fmt.Sprintf(`OUTPUT ONLY JSON BETWEEN %s AND %s

{
  "severity": "none|mild|moderate|moderately_severe|severe",
  "risks": [],
  "guidanceText": "string",
  "recommendClinicianReview": true|false
}

Age: %d
PHQ9: %s
GAD7: %s
Answers: %s
Context: %s

%s`, jsonStartMarker, jsonEndMarker, age, formatScore(phq9Score), formatScore(gad7Score), payload, contextNote, jsonStartMarker)
}

// severityRank orders the guidance severity labels from least to most severe.
// Unknown labels rank lowest so a garbled model severity can still be raised
// by the deterministic floor.
var severityRank = map[string]int{
	SeverityNone:             0,
	SeverityMild:             1,
	SeverityModerate:         2,
	SeverityModeratelySevere: 3,
	SeveritySevere:           4,
}

// mapToGuidanceSeverity folds the GAD-7 "minimal" label into the guidance enum
func mapToGuidanceSeverity(severity string) string {
	if severity == SeverityMinimal {
		return SeverityNone
	}
	return severity
}

// deterministicSeverityFloor returns the worse of the two instrument bands,
// expressed in the guidance severity enum, or nil when neither instrument was
// administered.
func deterministicSeverityFloor(score models.ScoreResult) *string {
	rank := -1
	var floor string
	consider := func(severity *string) {
		if severity == nil {
			return
		}
		mapped := mapToGuidanceSeverity(*severity)
		if r, ok := severityRank[mapped]; ok && r > rank {
			rank = r
			floor = mapped
		}
	}
	consider(score.Phq9Severity)
	consider(score.Gad7Severity)
	if rank < 0 {
		return nil
	}
	return &floor
}

// ReconcileGuidance merges the deterministic score with a successful model
// analysis, always preferring the more cautious interpretation: severity is
// never lowered below the deterministic band, the suicidal-ideation risk is
// injected when the scorer flagged it, and clinician review is forced
// whenever the scorer demands it.
func ReconcileGuidance(score models.ScoreResult, guidance models.GuidanceResult) models.GuidanceResult {
	merged := guidance
	if merged.Risks == nil {
		merged.Risks = []string{}
	}

	if floor := deterministicSeverityFloor(score); floor != nil {
		if merged.Severity == nil || severityRank[*merged.Severity] < severityRank[*floor] {
			merged.Severity = floor
		}
	}

	if score.Suicidal && !containsString(merged.Risks, suicidalRiskLabel) {
		merged.Risks = append([]string{suicidalRiskLabel}, merged.Risks...)
	}

	if score.HighRisk || score.NeedsReview {
		merged.RecommendClinicianReview = true
	}

	return merged
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// AnalyzeAssessment runs the full qualitative layer for one submission:
// synthesis against the deterministic scores, then cautious reconciliation.
// The reconciliation step is skipped on the failure path, which is already
// the maximally cautious default.
func AnalyzeAssessment(ctx context.Context, age int, answers []models.Answer, score models.ScoreResult, contextNote string) models.GuidanceResult {
	guidance, ok := synthesizeGuidance(ctx, age, answers, score.Phq9Score, score.Gad7Score, contextNote)
	if !ok {
		return guidance
	}
	return ReconcileGuidance(score, guidance)
}
