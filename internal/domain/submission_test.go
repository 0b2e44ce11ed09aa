package domain_test

import (
	"errors"
	"testing"

	"github.com/waabox/auditdeck/internal/domain"
)

func TestSubmission_CanProceed_CodeStepRequiresCode(t *testing.T) {
	s := domain.Submission{Code: "   \n\t"}
	if s.CanProceed(domain.StepCode) {
		t.Error("expected blank code to block the code step")
	}
	s.Code = "pub struct Vault {}"
	if !s.CanProceed(domain.StepCode) {
		t.Error("expected code step to proceed once code is present")
	}
}

func TestSubmission_CanProceed_DetailsStepRequiresNameAndDescription(t *testing.T) {
	s := domain.Submission{ProjectName: "Vault"}
	if s.CanProceed(domain.StepDetails) {
		t.Error("expected missing description to block the details step")
	}
	s.Description = "Holds deposits"
	if !s.CanProceed(domain.StepDetails) {
		t.Error("expected details step to proceed with name and description")
	}
}

func TestSubmission_CanProceed_ReviewAlwaysProceeds(t *testing.T) {
	if !(domain.Submission{}).CanProceed(domain.StepReview) {
		t.Error("expected review step to always proceed")
	}
}

func TestSubmission_Validate_ReturnsErrNotValid(t *testing.T) {
	err := domain.Submission{Code: "x"}.Validate()
	if !errors.Is(err, domain.ErrNotValid) {
		t.Fatalf("expected ErrNotValid, got %v", err)
	}

	ok := domain.Submission{Code: "x", ProjectName: "p", Description: "d"}
	if err := ok.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSubmission_LineCount(t *testing.T) {
	s := domain.Submission{Code: "a\nb\nc"}
	if got := s.LineCount(); got != 3 {
		t.Errorf("expected 3 lines, got %d", got)
	}
}

func TestSubmissionStep_Percent(t *testing.T) {
	cases := map[domain.SubmissionStep]int{
		domain.StepCode:    33,
		domain.StepDetails: 66,
		domain.StepReview:  100,
	}
	for step, want := range cases {
		if got := step.Percent(); got != want {
			t.Errorf("step %d: expected %d%%, got %d%%", step, want, got)
		}
	}
}
