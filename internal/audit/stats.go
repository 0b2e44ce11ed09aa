package audit

import "github.com/waabox/auditdeck/internal/domain"

// Summarize computes dashboard stats. The average score only covers audits
// that have a score, rounded to the nearest integer. Gas saved is summed over
// the same audits.
func Summarize(audits []domain.Audit) domain.Stats {
	var st domain.Stats
	scored, sum := 0, 0
	for _, a := range audits {
		st.Total++
		switch a.Status {
		case domain.AuditStatusCompleted:
			st.Completed++
		case domain.AuditStatusProcessing:
			st.Processing++
		}
		if a.HasScore() {
			scored++
			sum += a.Score
			st.Vulnerabilities += len(a.Vulnerabilities)
			st.GasSaved += a.GasSaved()
		}
		if a.Certificate != nil {
			st.Certificates++
		}
	}
	if scored > 0 {
		st.AverageScore = (sum*2 + scored) / (scored * 2)
	}
	return st
}
