package tui

import (
	"fmt"
	"strings"

	"github.com/waabox/auditdeck/internal/domain"
)

// WizardField identifies an editable field of the submission wizard.
type WizardField int

const (
	FieldCode WizardField = iota
	FieldProjectName
	FieldDescription
	FieldOriginalPrompt
)

func (f WizardField) label() string {
	switch f {
	case FieldCode:
		return "Contract code"
	case FieldProjectName:
		return "Project name"
	case FieldDescription:
		return "Description"
	case FieldOriginalPrompt:
		return "Original prompt (optional)"
	default:
		return ""
	}
}

// fieldsOf returns the editable fields of a wizard step in tab order.
func fieldsOf(step domain.SubmissionStep) []WizardField {
	switch step {
	case domain.StepCode:
		return []WizardField{FieldCode}
	case domain.StepDetails:
		return []WizardField{FieldProjectName, FieldDescription, FieldOriginalPrompt}
	default:
		return nil
	}
}

// WizardModel is the immutable state of the three step audit submission wizard.
type WizardModel struct {
	step       domain.SubmissionStep
	focus      WizardField
	submission domain.Submission
}

// NewWizardModel creates a wizard on the code step.
func NewWizardModel() WizardModel {
	return WizardModel{step: domain.StepCode, focus: FieldCode}
}

func (m WizardModel) Step() domain.SubmissionStep {
	return m.step
}

func (m WizardModel) Focus() WizardField {
	return m.focus
}

func (m WizardModel) Submission() domain.Submission {
	return m.submission
}

// CanProceed reports whether the current step is complete.
func (m WizardModel) CanProceed() bool {
	return m.submission.CanProceed(m.step)
}

// Type appends text to the focused field. It is ignored on the review step.
func (m WizardModel) Type(text string) WizardModel {
	if m.step == domain.StepReview {
		return m
	}
	return m.setField(m.field() + text)
}

// Newline inserts a line break in multi-line fields. In the project name it
// moves the focus to the next field instead.
func (m WizardModel) Newline() WizardModel {
	if m.step == domain.StepReview {
		return m
	}
	if m.focus == FieldProjectName {
		return m.NextField()
	}
	return m.Type("\n")
}

// Backspace removes the last character of the focused field.
func (m WizardModel) Backspace() WizardModel {
	if m.step == domain.StepReview {
		return m
	}
	r := []rune(m.field())
	if len(r) == 0 {
		return m
	}
	return m.setField(string(r[:len(r)-1]))
}

// NextField cycles the focus through the fields of the current step.
func (m WizardModel) NextField() WizardModel {
	fields := fieldsOf(m.step)
	for i, f := range fields {
		if f == m.focus {
			m.focus = fields[(i+1)%len(fields)]
			return m
		}
	}
	return m
}

// Next moves to the following step. It reports false and leaves the model
// unchanged when the current step is incomplete or already the last one.
func (m WizardModel) Next() (WizardModel, bool) {
	if m.step >= domain.StepReview || !m.CanProceed() {
		return m, false
	}
	m.step++
	if fields := fieldsOf(m.step); len(fields) > 0 {
		m.focus = fields[0]
	}
	return m, true
}

// Back moves to the previous step. It reports false on the first step.
func (m WizardModel) Back() (WizardModel, bool) {
	if m.step <= domain.StepCode {
		return m, false
	}
	m.step--
	if fields := fieldsOf(m.step); len(fields) > 0 {
		m.focus = fields[0]
	}
	return m, true
}

func (m WizardModel) field() string {
	switch m.focus {
	case FieldCode:
		return m.submission.Code
	case FieldProjectName:
		return m.submission.ProjectName
	case FieldDescription:
		return m.submission.Description
	case FieldOriginalPrompt:
		return m.submission.OriginalPrompt
	default:
		return ""
	}
}

func (m WizardModel) setField(v string) WizardModel {
	switch m.focus {
	case FieldCode:
		m.submission.Code = v
	case FieldProjectName:
		m.submission.ProjectName = v
	case FieldDescription:
		m.submission.Description = v
	case FieldOriginalPrompt:
		m.submission.OriginalPrompt = v
	}
	return m
}

// View renders the current wizard step.
func (m WizardModel) View() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(" Step %d of %d: %s  %s %d%%\n\n",
		int(m.step), domain.SubmissionSteps, titleStyle.Render(m.step.Title()),
		bar(m.step.Percent(), 15), m.step.Percent()))

	switch m.step {
	case domain.StepReview:
		s := m.submission
		sb.WriteString(fmt.Sprintf("  Project:     %s\n", s.ProjectName))
		sb.WriteString(fmt.Sprintf("  Description: %s\n", firstLine(s.Description)))
		if s.OriginalPrompt != "" {
			sb.WriteString(fmt.Sprintf("  Prompt:      %s\n", firstLine(s.OriginalPrompt)))
		}
		sb.WriteString(fmt.Sprintf("  Code:        %d lines\n", s.LineCount()))
		sb.WriteString("\n  Press ctrl+n to start the AI audit.\n")
	default:
		for _, f := range fieldsOf(m.step) {
			marker := "  "
			if f == m.focus {
				marker = "> "
			}
			m2 := m
			m2.focus = f
			value := m2.field()
			if f == m.focus {
				value += "█"
			}
			sb.WriteString(fmt.Sprintf("%s%s\n", marker, titleStyle.Render(f.label())))
			for _, line := range strings.Split(value, "\n") {
				sb.WriteString("    " + line + "\n")
			}
		}
		if !m.CanProceed() {
			sb.WriteString("\n" + mutedStyle.Render("  Fill in the required fields to continue.") + "\n")
		}
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// bar renders a fixed width progress bar for a percentage.
func bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
