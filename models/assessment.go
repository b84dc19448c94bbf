package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer pairs a question id with the user's response. Values are numbers for
// scale questions and strings for text questions.
type Answer struct {
	QuestionID string      `bson:"questionId" json:"questionId"`
	Value      interface{} `bson:"value" json:"value"`
}

// ScoreResult is the deterministic output of the clinical scorer. Score and
// severity fields are nil when the corresponding instrument was not
// administered at all, which is distinct from an all-zero administration.
type ScoreResult struct {
	Phq9Score    *int    `bson:"phq9Score" json:"phq9Score"`
	Phq9Severity *string `bson:"phq9Severity" json:"phq9Severity"`
	Gad7Score    *int    `bson:"gad7Score" json:"gad7Score"`
	Gad7Severity *string `bson:"gad7Severity" json:"gad7Severity"`
	HighRisk     bool    `bson:"highRisk" json:"highRisk"`
	Suicidal     bool    `bson:"suicidal" json:"suicidal"`
	NeedsReview  bool    `bson:"needsReview" json:"needsReview"`
}

// GuidanceResult is the qualitative analysis layer. When the generative path
// is unavailable or fails, every field is empty except
// RecommendClinicianReview, which is forced true.
type GuidanceResult struct {
	Severity                 *string  `bson:"severity" json:"severity"`
	Risks                    []string `bson:"risks" json:"risks"`
	GuidanceText             *string  `bson:"guidanceText" json:"guidanceText"`
	RecommendClinicianReview bool     `bson:"recommendClinicianReview" json:"recommendClinicianReview"`
}

// Assessment is the persisted record of one completed questionnaire.
type Assessment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Age     int                `bson:"age" json:"age"`
	Answers []Answer           `bson:"answers" json:"answers"`

	Phq9Score    *int    `bson:"phq9Score" json:"phq9Score"`
	Phq9Severity *string `bson:"phq9Severity" json:"phq9Severity"`
	Gad7Score    *int    `bson:"gad7Score" json:"gad7Score"`
	Gad7Severity *string `bson:"gad7Severity" json:"gad7Severity"`
	HighRisk     bool    `bson:"highRisk" json:"highRisk"`
	Suicidal     bool    `bson:"suicidal" json:"suicidal"`
	NeedsReview  bool    `bson:"needsReview" json:"needsReview"`

	LlmAnalysis GuidanceResult `bson:"llmAnalysis" json:"llmAnalysis"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
