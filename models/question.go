package models

// Question types understood by the scorer and the client renderer.
const (
	QuestionTypeScale  = "scale"  // 1..5 ordinal
	QuestionTypeScale4 = "scale4" // 0..3 frequency scale (PHQ/GAD style)
	QuestionTypeText   = "text"   // free text, never scored
)

// Scale holds the inclusive response bounds for an ordinal question
type Scale struct {
	Min int `bson:"min" json:"min"`
	Max int `bson:"max" json:"max"`
}

// Question is a single assessment item. Questions are built per request and
// never persisted on their own; only the answers keyed by ID are stored.
type Question struct {
	ID    string `bson:"id" json:"id"`
	Type  string `bson:"type" json:"type"`
	Title string `bson:"title" json:"title"`
	Hint  string `bson:"hint,omitempty" json:"hint,omitempty"`
	Scale *Scale `bson:"scale,omitempty" json:"scale,omitempty"`
}

// ScaleForType returns the canonical bounds for a question type. Bounds are
// always recomputed from the type so upstream model output cannot smuggle in
// out-of-range scales.
func ScaleForType(questionType string) *Scale {
	switch questionType {
	case QuestionTypeScale4:
		return &Scale{Min: 0, Max: 3}
	case QuestionTypeScale:
		return &Scale{Min: 1, Max: 5}
	default:
		return nil
	}
}
