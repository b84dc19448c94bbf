package controllers

import (
	"log"
	"net/http"
	"time"

	"sereno/db"
	"sereno/internal/assessment"
	"sereno/models"
	"sereno/services"
	"sereno/utils"

	"github.com/gin-gonic/gin"
)

type StartAssessmentRequest struct {
	Age              int   `json:"age"`
	MaxQuestions     *int  `json:"maxQuestions"`
	IncludeValidated *bool `json:"includeValidated"`
}

type SubmitAssessmentRequest struct {
	Age     int             `json:"age"`
	Answers []models.Answer `json:"answers" binding:"required"`
	Context string          `json:"context"`
}

type SubmitAssessmentResponse struct {
	AssessmentID string                `json:"assessmentId"`
	Phq9Score    *int                  `json:"phq9Score"`
	Phq9Severity *string               `json:"phq9Severity"`
	Gad7Score    *int                  `json:"gad7Score"`
	Gad7Severity *string               `json:"gad7Severity"`
	HighRisk     bool                  `json:"highRisk"`
	Suicidal     bool                  `json:"suicidal"`
	NeedsReview  bool                  `json:"needsReview"`
	LlmAnalysis  models.GuidanceResult `json:"llmAnalysis"`
}

// StartAssessment returns a fresh question set. Question generation is a
// total operation, so the only failure mode here is throttling.
func StartAssessment(c *gin.Context) {
	var req StartAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	limiter := assessment.NewRateLimiter()
	if !limiter.AllowStart(c.ClientIP(), assessment.DefaultRateLimitConfig()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many assessment requests, try again shortly"})
		return
	}

	maxQuestions := 0
	if req.MaxQuestions != nil {
		maxQuestions = *req.MaxQuestions
	}
	includeValidated := true
	if req.IncludeValidated != nil {
		includeValidated = *req.IncludeValidated
	}

	questions := services.GenerateQuestions(c.Request.Context(), req.Age, maxQuestions, includeValidated)
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

// SubmitAssessment scores the submitted answers, runs the qualitative
// analysis layer and persists the combined record.
func SubmitAssessment(c *gin.Context) {
	email := c.GetString("userEmail")
	user, err := utils.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	limiter := assessment.NewRateLimiter()
	if !limiter.AllowSubmit(user.ID.Hex(), assessment.DefaultRateLimitConfig()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many submissions, try again shortly"})
		return
	}

	score := services.Score(services.AnswersToMap(req.Answers))
	guidance := services.AnalyzeAssessment(c.Request.Context(), req.Age, req.Answers, score, req.Context)

	record := models.Assessment{
		User:         user.ID,
		Age:          req.Age,
		Answers:      req.Answers,
		Phq9Score:    score.Phq9Score,
		Phq9Severity: score.Phq9Severity,
		Gad7Score:    score.Gad7Score,
		Gad7Severity: score.Gad7Severity,
		HighRisk:     score.HighRisk,
		Suicidal:     score.Suicidal,
		NeedsReview:  score.NeedsReview,
		LlmAnalysis:  guidance,
		CreatedAt:    time.Now(),
	}

	if err := db.SaveAssessment(&record); err != nil {
		log.Printf("Failed to save assessment for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assessment"})
		return
	}

	c.JSON(http.StatusOK, SubmitAssessmentResponse{
		AssessmentID: record.ID.Hex(),
		Phq9Score:    score.Phq9Score,
		Phq9Severity: score.Phq9Severity,
		Gad7Score:    score.Gad7Score,
		Gad7Severity: score.Gad7Severity,
		HighRisk:     score.HighRisk,
		Suicidal:     score.Suicidal,
		NeedsReview:  score.NeedsReview,
		LlmAnalysis:  guidance,
	})
}

// GetAssessmentHistory returns the caller's past assessments, newest first
func GetAssessmentHistory(c *gin.Context) {
	email := c.GetString("userEmail")
	user, err := utils.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	assessments, err := db.GetAssessmentHistory(user.ID, 50)
	if err != nil {
		log.Printf("Failed to fetch assessment history for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}
