package services

import (
	"context"
	"fmt"
	"log"

	"sereno/models"
)

const (
	defaultMaxQuestions = 60
	minQuestionCount    = 10
	maxQuestionCount    = 100
)

// clampMaxQuestions normalizes a caller-supplied maximum into [10,100].
// Zero means "not supplied" and takes the default; anything else out of
// range clamps silently.
func clampMaxQuestions(n int) int {
	if n == 0 {
		n = defaultMaxQuestions
	}
	if n < minQuestionCount {
		return minQuestionCount
	}
	if n > maxQuestionCount {
		return maxQuestionCount
	}
	return n
}

func truncateQuestions(questions []models.Question, maxQuestions int) []models.Question {
	if len(questions) > maxQuestions {
		return questions[:maxQuestions]
	}
	return questions
}

// GenerateQuestions builds the assessment question set for one request. It
// asks the generative model for an age-appropriate catalog and validates the
// reply; any failure along the way (no credential, network error, timeout,
// unusable payload) yields the fallback catalog instead. It always returns a
// non-empty set and never an error.
func GenerateQuestions(ctx context.Context, age, maxQuestions int, includeValidated bool) []models.Question {
	maxQ := clampMaxQuestions(maxQuestions)

	if !hasModelCredential() {
		return truncateQuestions(FallbackCatalog(), maxQ)
	}

	prompt := buildQuestionPrompt(age, maxQ, includeValidated)
	raw, err := generateText(ctx, prompt, questionTokenCap)
	if err != nil {
		log.Printf("Question generation failed, using fallback catalog: %v", err)
		return truncateQuestions(FallbackCatalog(), maxQ)
	}

	questions := ExtractQuestionSet(raw, maxQ)
	if questions == nil {
		log.Println("Model returned unusable question payload, using fallback catalog")
		return truncateQuestions(FallbackCatalog(), maxQ)
	}
	return questions
}

// buildQuestionPrompt constructs the generation prompt. The trauma/safety ids
// are pinned to the trauma prefix so the scorer can recognize safety items
// without the originating question set.
func buildQuestionPrompt(age, maxQuestions int, includeValidated bool) string {
	validatedBlock := "Do not force PHQ-9 or GAD-7."
	if includeValidated {
		validatedBlock = "Include PHQ-9 (phq1..phq9) and GAD-7 (gad1..gad7) FIRST, in that order."
	}

	return fmt.Sprintf(`OUTPUT ONLY JSON BETWEEN %s AND %s

Return:
{ "questions": [ ... ] }

%s

After PHQ-9 & GAD-7, include:
- Sleep & Energy (5 questions)
- Daily Functioning (5 questions)
- Stress & Coping (5 questions)
- Emotional Regulation (5 questions)
- Social Connection & Loneliness (5 questions)
- Self-esteem & Self-worth (4 questions)
- Substance Use (3 questions)
- Trauma / Safety screening (2 questions, safe wording, ids trauma1 and trauma2)
- One open-ended text question

Rules:
- scale4 = 0..3
- scale = 1..5
- Total questions <= %d
- Use clear, simple and slightly descriptive language so users fully understand each question.

Schema:
{
  "id": "string",
  "type": "scale|scale4|text",
  "title": "string",
  "hint": "string (optional)",
  "scale": { "min": number, "max": number }
}

User age: %d

%s`, jsonStartMarker, jsonEndMarker, validatedBlock, maxQuestions, age, jsonStartMarker)
}
