package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sereno/models"
)

func assertSafeDefault(t *testing.T, result models.GuidanceResult) {
	t.Helper()
	if result.Severity != nil {
		t.Errorf("Expected nil severity, got %q", *result.Severity)
	}
	if result.Risks == nil || len(result.Risks) != 0 {
		t.Errorf("Expected empty risks, got %v", result.Risks)
	}
	if result.GuidanceText != nil {
		t.Errorf("Expected nil guidanceText, got %q", *result.GuidanceText)
	}
	if !result.RecommendClinicianReview {
		t.Error("Failure path must recommend clinician review")
	}
}

func TestSynthesizeGuidanceNoCredential(t *testing.T) {
	calls := withoutCredential(t)

	result := SynthesizeGuidance(context.Background(), 30, nil, nil, nil, "")
	assertSafeDefault(t, result)
	if *calls != 0 {
		t.Errorf("Expected zero model calls without a credential, got %d", *calls)
	}
}

func TestSynthesizeGuidanceModelError(t *testing.T) {
	withStubModel(t, func(ctx context.Context, prompt string, maxTokens int32) (string, error) {
		return "", errors.New("timeout")
	})

	assertSafeDefault(t, SynthesizeGuidance(context.Background(), 30, nil, nil, nil, ""))
}

func TestSynthesizeGuidanceRequiresMarkers(t *testing.T) {
	// A bare JSON object without the marker pair is a synthesis failure
	withStubModel(t, func(ctx context.Context, prompt string, maxTokens int32) (string, error) {
		return `{"severity": "mild"}`, nil
	})

	assertSafeDefault(t, SynthesizeGuidance(context.Background(), 30, nil, nil, nil, ""))
}

func TestSynthesizeGuidanceUnparsablePayload(t *testing.T) {
	withStubModel(t, func(ctx context.Context, prompt string, maxTokens int32) (string, error) {
		return "<<JSON>>{oops<<JSON_END>>", nil
	})

	assertSafeDefault(t, SynthesizeGuidance(context.Background(), 30, nil, nil, nil, ""))
}

func TestSynthesizeGuidanceSuccess(t *testing.T) {
	withStubModel(t, func(ctx context.Context, prompt string, maxTokens int32) (string, error) {
		return `<<JSON>>{
			"severity": "mild",
			"risks": ["social isolation", 42],
			"guidanceText": "Keep a regular sleep schedule.",
			"recommendClinicianReview": false
		}<<JSON_END>>`, nil
	})

	result := SynthesizeGuidance(context.Background(), 30, nil, nil, nil, "")
	if result.Severity == nil || *result.Severity != "mild" {
		t.Errorf("Expected severity mild, got %v", result.Severity)
	}
	if len(result.Risks) != 1 || result.Risks[0] != "social isolation" {
		t.Errorf("Non-string risks must be dropped, got %v", result.Risks)
	}
	if result.GuidanceText == nil || !strings.Contains(*result.GuidanceText, "sleep") {
		t.Errorf("Expected guidance text, got %v", result.GuidanceText)
	}
	if result.RecommendClinicianReview {
		t.Error("Explicit false from the model must be respected on the success path")
	}
}

func TestSynthesizeGuidanceRisksNonArray(t *testing.T) {
	withStubModel(t, func(ctx context.Context, prompt string, maxTokens int32) (string, error) {
		return `<<JSON>>{"severity": "none", "risks": "none", "recommendClinicianReview": true}<<JSON_END>>`, nil
	})

	result := SynthesizeGuidance(context.Background(), 30, nil, nil, nil, "")
	if result.Risks == nil || len(result.Risks) != 0 {
		t.Errorf("Non-array risks must coerce to empty, got %v", result.Risks)
	}
	if !result.RecommendClinicianReview {
		t.Error("Expected recommendClinicianReview true")
	}
}

func TestBuildGuidancePromptCapsAnswers(t *testing.T) {
	long := strings.Repeat("x", 5000)
	answers := []models.Answer{{QuestionID: "open_context", Value: long}}

	prompt := buildGuidancePrompt(30, answers, nil, nil, "")
	if strings.Contains(prompt, long) {
		t.Error("Serialized answers must be capped before embedding in the prompt")
	}
	if !strings.Contains(prompt, "not administered") {
		t.Error("Nil scores must be rendered as not administered")
	}
}

func TestReconcileGuidanceRaisesSeverity(t *testing.T) {
	severe := SeveritySevere
	mild := SeverityMild
	score := models.ScoreResult{Phq9Severity: &severe, HighRisk: true, NeedsReview: true}
	guidance := models.GuidanceResult{Severity: &mild, Risks: []string{}, RecommendClinicianReview: false}

	merged := ReconcileGuidance(score, guidance)
	if merged.Severity == nil || *merged.Severity != SeveritySevere {
		t.Errorf("Severity must be raised to the deterministic floor, got %v", merged.Severity)
	}
	if !merged.RecommendClinicianReview {
		t.Error("Review must be forced when the scorer demands it")
	}
}

func TestReconcileGuidanceKeepsWorseModelSeverity(t *testing.T) {
	mild := SeverityMild
	severe := SeveritySevere
	score := models.ScoreResult{Phq9Severity: &mild}
	guidance := models.GuidanceResult{Severity: &severe, Risks: []string{}}

	merged := ReconcileGuidance(score, guidance)
	if merged.Severity == nil || *merged.Severity != SeveritySevere {
		t.Errorf("A more severe model judgement must be kept, got %v", merged.Severity)
	}
}

func TestReconcileGuidanceMapsMinimal(t *testing.T) {
	minimal := SeverityMinimal
	score := models.ScoreResult{Gad7Severity: &minimal}
	guidance := models.GuidanceResult{Risks: []string{}}

	merged := ReconcileGuidance(score, guidance)
	if merged.Severity == nil || *merged.Severity != SeverityNone {
		t.Errorf("GAD minimal must map onto the none band, got %v", merged.Severity)
	}
}

func TestReconcileGuidanceInjectsSuicidalRisk(t *testing.T) {
	score := models.ScoreResult{Suicidal: true, HighRisk: true, NeedsReview: true}
	guidance := models.GuidanceResult{Risks: []string{"poor sleep"}}

	merged := ReconcileGuidance(score, guidance)
	if len(merged.Risks) != 2 || merged.Risks[0] != suicidalRiskLabel {
		t.Errorf("Suicidal risk must be prepended, got %v", merged.Risks)
	}

	// Not duplicated when the model already named it
	guidance = models.GuidanceResult{Risks: []string{suicidalRiskLabel}}
	merged = ReconcileGuidance(score, guidance)
	if len(merged.Risks) != 1 {
		t.Errorf("Risk must not be duplicated, got %v", merged.Risks)
	}
}

func TestAnalyzeAssessmentFailureSkipsReconcile(t *testing.T) {
	withoutCredential(t)

	severe := SeveritySevere
	score := models.ScoreResult{Phq9Severity: &severe, HighRisk: true, NeedsReview: true}

	result := AnalyzeAssessment(context.Background(), 30, nil, score, "")
	// The failure default is already maximally cautious; severity stays nil
	assertSafeDefault(t, result)
}

func TestAnalyzeAssessmentSuccessReconciles(t *testing.T) {
	withStubModel(t, func(ctx context.Context, prompt string, maxTokens int32) (string, error) {
		return `<<JSON>>{"severity": "mild", "risks": [], "recommendClinicianReview": false}<<JSON_END>>`, nil
	})

	severe := SeveritySevere
	suicidalScore := models.ScoreResult{Phq9Severity: &severe, Suicidal: true, HighRisk: true, NeedsReview: true}

	result := AnalyzeAssessment(context.Background(), 30, nil, suicidalScore, "")
	if result.Severity == nil || *result.Severity != SeveritySevere {
		t.Errorf("Expected severity raised to severe, got %v", result.Severity)
	}
	if !result.RecommendClinicianReview {
		t.Error("Expected forced clinician review")
	}
	if len(result.Risks) != 1 || result.Risks[0] != suicidalRiskLabel {
		t.Errorf("Expected injected suicidal risk, got %v", result.Risks)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		in   interface{}
		want bool
	}{
		{true, true},
		{false, false},
		{nil, false},
		{"", false},
		{"yes", true},
		{0.0, false},
		{1.0, true},
	}
	for _, tc := range cases {
		if got := truthy(tc.in); got != tc.want {
			t.Errorf("truthy(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
