package Iservices

type Classification int

const (
	ClassificationContinue Classification = iota
	ClassificationGreeting
	ClassificationForbidden
)

type IClassifierService interface {
	Classify(query string) Classification
}
