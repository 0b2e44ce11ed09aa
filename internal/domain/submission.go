package domain

import (
	"fmt"
	"strings"
)

// SubmissionStep identifies a page of the audit submission wizard.
type SubmissionStep int

const (
	StepCode SubmissionStep = iota + 1
	StepDetails
	StepReview
)

// SubmissionSteps is the number of wizard steps.
const SubmissionSteps = 3

// Title returns the human readable title of the step.
func (s SubmissionStep) Title() string {
	switch s {
	case StepCode:
		return "Code Submission"
	case StepDetails:
		return "Project Details"
	case StepReview:
		return "Review & Confirm"
	default:
		return "Unknown"
	}
}

// Percent returns how far through the wizard the step is, in [0,100].
func (s SubmissionStep) Percent() int {
	if s < StepCode {
		return 0
	}
	if s > StepReview {
		return 100
	}
	return int(s) * 100 / SubmissionSteps
}

// Submission holds the data a user enters in the audit wizard.
type Submission struct {
	Code           string
	ProjectName    string
	Description    string
	OriginalPrompt string
}

// CanProceed reports whether the given step has enough data to move on.
func (s Submission) CanProceed(step SubmissionStep) bool {
	switch step {
	case StepCode:
		return strings.TrimSpace(s.Code) != ""
	case StepDetails:
		return strings.TrimSpace(s.ProjectName) != "" && strings.TrimSpace(s.Description) != ""
	case StepReview:
		return true
	default:
		return false
	}
}

// Validate checks every wizard step and returns an ErrNotValid wrapped error
// naming the first step that is incomplete.
func (s Submission) Validate() error {
	for step := StepCode; step <= StepReview; step++ {
		if !s.CanProceed(step) {
			return fmt.Errorf("%s step is incomplete: %w", step.Title(), ErrNotValid)
		}
	}
	return nil
}

// LineCount returns the number of source lines in the submitted code.
func (s Submission) LineCount() int {
	return strings.Count(s.Code, "\n") + 1
}
