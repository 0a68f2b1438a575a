package services

import (
	"strings"
	Iservices "techbot/internal/domain/interfaces/services"
)

const (
	WelcomeMessage    = "Welcome! How can we assist you today?"
	DeflectionMessage = "I'm here to help with questions about Wings Tech Solutions."
)

var greetings = map[string]bool{
	"hi":           true,
	"hello":        true,
	"hey":          true,
	"good morning": true,
	"good evening": true,
}

var forbiddenPhrases = []string{
	"what is your role",
	"who are you",
	"how do you generate",
	"system prompt",
	"ignore instructions",
	"reveal rules",
	"show hidden",
	"prompt injection",
}

// ClassifierService short-circuits trivial and probing queries before any
// I/O happens. It is a pure function over the query string.
type ClassifierService struct{}

func NewClassifierService() *ClassifierService {
	return &ClassifierService{}
}

func (cs *ClassifierService) Classify(query string) Iservices.Classification {
	lowerQ := strings.ToLower(strings.TrimSpace(query))

	// A greeting must be the whole query, save for one trailing
	// punctuation mark. "hi, what is your pricing" is a real question.
	candidate := lowerQ
	if len(candidate) > 0 {
		switch candidate[len(candidate)-1] {
		case '.', '!', '?':
			candidate = strings.TrimSpace(candidate[:len(candidate)-1])
		}
	}
	if greetings[candidate] {
		return Iservices.ClassificationGreeting
	}

	for _, phrase := range forbiddenPhrases {
		if strings.Contains(lowerQ, phrase) {
			return Iservices.ClassificationForbidden
		}
	}

	return Iservices.ClassificationContinue
}
