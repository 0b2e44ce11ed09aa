package audit

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/waabox/auditdeck/internal/domain"
)

// NewFromSubmission builds the mock report shown once a simulated audit run
// completes. The report content is the static template; only the identity
// fields come from the submission.
func NewFromSubmission(sub domain.Submission, now time.Time) (domain.Audit, error) {
	if err := sub.Validate(); err != nil {
		return domain.Audit{}, fmt.Errorf("invalid submission: %w", err)
	}

	id := "audit-" + strings.ToLower(ulid.MustNew(ulid.Timestamp(now), rand.Reader).String())
	a := reportTemplate(id, strings.TrimSpace(sub.ProjectName), now.UTC())
	a.Description = strings.TrimSpace(sub.Description)
	a.SourceCode = sub.Code
	return a, nil
}
