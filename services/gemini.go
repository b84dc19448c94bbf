package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"sereno/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultGeminiModel = "gemini-1.5-flash"
	modelCallTimeout   = 45 * time.Second

	// Output caps for the two model-backed operations
	questionTokenCap int32 = 2200
	guidanceTokenCap int32 = 900
)

// assessmentConfig holds the generative-model tunables for this service.
// Installed once at startup; tests substitute fixed values directly.
type assessmentConfig struct {
	apiKey string
	model  string
}

var assessCfg assessmentConfig

// Global Gemini client instance
var geminiClient *genai.Client

// generateText is the single seam to the generative model. Tests replace it
// with a stub to exercise the parsing and fallback paths without network.
var generateText = generateGeminiText

// InitAssessmentService initializes the Gemini client using the API key from
// the config. A missing key is not fatal: every assessment operation degrades
// to its deterministic fallback.
func InitAssessmentService(cfg *config.Config) {
	assessCfg = assessmentConfig{
		apiKey: cfg.Gemini.ApiKey,
		model:  cfg.Gemini.Model,
	}
	if assessCfg.model == "" {
		assessCfg.model = defaultGeminiModel
	}
	if assessCfg.apiKey == "" {
		log.Println("Gemini API key not configured; question generation and guidance will use deterministic fallbacks")
		return
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(assessCfg.apiKey))
	if err != nil {
		panic("Failed to initialize Gemini client: " + err.Error())
	}
	geminiClient = client
}

// hasModelCredential reports whether the generative path is available at all
func hasModelCredential() bool {
	return assessCfg.apiKey != ""
}

// generateGeminiText sends a prompt to the configured model and concatenates
// the text parts of the response. Temperature is pinned to 0 so identical
// prompts produce stable output. A single attempt, bounded by
// modelCallTimeout; callers fall back on any error.
func generateGeminiText(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, modelCallTimeout)
	defer cancel()

	model := geminiClient.GenerativeModel(assessCfg.model)
	model.SetTemperature(0)
	model.SetMaxOutputTokens(maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String(), nil
}
