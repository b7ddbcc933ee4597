package model

import "errors"

var (
	// ErrDocumentNotFound is returned when a referenced document does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrAssessmentNotFound is returned when a referenced assessment does not exist.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrInvalidFeedback is returned for feedback scores outside {-1, +1}.
	ErrInvalidFeedback = errors.New("feedback score must be -1 or +1")
)
