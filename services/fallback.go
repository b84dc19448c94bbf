package services

import (
	"strconv"

	"sereno/models"
)

const scale4Hint = "0 = Not at all · 1 = Several days · 2 = More than half the days · 3 = Nearly every day"

// phq9Items returns the nine PHQ-9 depression screening items in canonical order
func phq9Items() []models.Question {
	titles := []string{
		"Over the past two weeks, how often have you had little interest or pleasure in doing things you usually enjoy?",
		"Over the past two weeks, how often have you felt down, depressed, or hopeless about your situation?",
		"How often have you had trouble falling asleep, staying asleep, or sleeping too much?",
		"How often have you felt tired, drained, or lacking energy throughout the day?",
		"How often have you noticed changes in your appetite, such as eating too little or too much?",
		"How often have you felt bad about yourself, felt like a failure, or felt that you have let yourself or your family down?",
		"How often have you had difficulty concentrating on tasks like reading, working, or watching something?",
		"How often have others noticed that you move or speak very slowly, or that you feel unusually restless?",
		"How often have you had thoughts that you might be better off dead or that you might harm yourself?",
	}
	questions := make([]models.Question, len(titles))
	for i, title := range titles {
		questions[i] = models.Question{
			ID:    "phq" + strconv.Itoa(i+1),
			Type:  models.QuestionTypeScale4,
			Title: title,
			Hint:  scale4Hint,
			Scale: models.ScaleForType(models.QuestionTypeScale4),
		}
	}
	return questions
}

// gad7Items returns the seven GAD-7 anxiety screening items in canonical order
func gad7Items() []models.Question {
	titles := []string{
		"Over the past two weeks, how often have you felt nervous, anxious, or on edge?",
		"How often have you found it difficult to stop or control your worrying once it starts?",
		"How often have you worried too much about different things in your daily life?",
		"How often have you had trouble relaxing, even when there was time to rest?",
		"How often have you felt so restless that it was hard to sit still?",
		"How often have you become easily annoyed, irritated, or frustrated?",
		"How often have you felt afraid, as if something bad or unpleasant might happen?",
	}
	questions := make([]models.Question, len(titles))
	for i, title := range titles {
		questions[i] = models.Question{
			ID:    "gad" + strconv.Itoa(i+1),
			Type:  models.QuestionTypeScale4,
			Title: title,
			Hint:  scale4Hint,
			Scale: models.ScaleForType(models.QuestionTypeScale4),
		}
	}
	return questions
}

// supplementalItems returns the fixed non-validated screeners, ordered by
// priority so truncation drops from the tail.
func supplementalItems() []models.Question {
	scale := models.ScaleForType(models.QuestionTypeScale)
	return []models.Question{
		{ID: "sleep_quality", Type: models.QuestionTypeScale, Title: "Overall, how would you rate the quality of your sleep on most nights?", Scale: scale},
		{ID: "energy", Type: models.QuestionTypeScale, Title: "How would you describe your energy levels during a typical day?", Scale: scale},
		{ID: "stress", Type: models.QuestionTypeScale, Title: "How stressed or overwhelmed do you generally feel in your day-to-day life?", Scale: scale},
		{ID: "coping", Type: models.QuestionTypeText, Title: "When you feel stressed, anxious, or low, what usually helps you cope or feel better?"},
		{ID: "lonely", Type: models.QuestionTypeScale, Title: "How often do you feel lonely or disconnected from people around you?", Scale: scale},
		{ID: "support", Type: models.QuestionTypeScale, Title: "Do you feel that you have people you can rely on for emotional support when needed?", Scale: scale},
		{ID: "self_worth", Type: models.QuestionTypeScale, Title: "How would you describe your overall sense of self-worth or confidence in yourself?", Scale: scale},
		{ID: "emotion_control", Type: models.QuestionTypeScale, Title: "How well are you able to manage or control strong emotions like anger, sadness, or fear?", Scale: scale},
		{ID: "open_context", Type: models.QuestionTypeText, Title: "Is there anything else about your thoughts, feelings, or mental health that you would like to share?"},
	}
}

// FallbackCatalog is the hand-authored question set used whenever the
// generative path is unavailable or returns something unusable. PHQ-9 and
// GAD-7 always come first so truncation never drops a validated item.
func FallbackCatalog() []models.Question {
	catalog := phq9Items()
	catalog = append(catalog, gad7Items()...)
	catalog = append(catalog, supplementalItems()...)
	return catalog
}
