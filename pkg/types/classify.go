// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ClassificationMethod identifies which classifier path produced a result.
type ClassificationMethod string

const (
	MethodAI      ClassificationMethod = "ai"
	MethodKeyword ClassificationMethod = "keyword"
)

// Classification is a subject-category assignment for one paper.
type Classification struct {
	// PrimarySubject is the single best category, or "Other".
	PrimarySubject string `json:"primary_subject" yaml:"primary_subject"`

	// SecondarySubjects holds up to two runner-up categories.
	SecondarySubjects []string `json:"secondary_subjects" yaml:"secondary_subjects"`

	// Confidence is "high", "medium", or "low".
	Confidence string `json:"confidence" yaml:"confidence"`

	// Reasoning is a brief explanation of the assignment.
	Reasoning string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`

	// Method records which classifier produced this result.
	Method ClassificationMethod `json:"method" yaml:"method"`
}

// DefaultCategories is the subject taxonomy used when no custom category
// list is configured.
var DefaultCategories = []string{
	"Computer Science",
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Medicine",
	"Engineering",
	"Social Sciences",
	"Economics",
	"Psychology",
	"Education",
	"Literature",
	"History",
	"Philosophy",
	"Law",
	"Business",
	"Environmental Science",
	"Other",
}
