package audit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/waabox/auditdeck/internal/domain"
)

// DateRange restricts audits by age.
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// ScoreRange restricts audits by trust score band.
type ScoreRange string

const (
	ScoreRangeAll    ScoreRange = "all"
	ScoreRangeHigh   ScoreRange = "high"
	ScoreRangeMedium ScoreRange = "medium"
	ScoreRangeLow    ScoreRange = "low"
)

// StatusFilter restricts audits by status. StatusAll disables the filter.
const StatusAll domain.AuditStatus = "all"

// SortBy selects the sort key.
type SortBy string

const (
	SortByDate  SortBy = "date"
	SortByScore SortBy = "score"
	SortByName  SortBy = "name"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Score band thresholds, shared with the trust score colouring.
const (
	HighScoreThreshold   = 80
	MediumScoreThreshold = 60
)

// FilterOptions is the dashboard search, filter and sort configuration.
type FilterOptions struct {
	Search     string
	DateRange  DateRange
	ScoreRange ScoreRange
	Status     domain.AuditStatus
	SortBy     SortBy
	SortOrder  SortOrder
}

// DefaultFilterOptions returns options that keep every audit, newest first.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		DateRange:  DateRangeAll,
		ScoreRange: ScoreRangeAll,
		Status:     StatusAll,
		SortBy:     SortByDate,
		SortOrder:  SortDesc,
	}
}

// ActiveCount returns the number of options that differ from the defaults.
// A non-default sort counts once regardless of which part changed.
func (f FilterOptions) ActiveCount() int {
	count := 0
	if f.Search != "" {
		count++
	}
	if f.DateRange != DateRangeAll {
		count++
	}
	if f.ScoreRange != ScoreRangeAll {
		count++
	}
	if f.Status != StatusAll {
		count++
	}
	if f.SortBy != SortByDate || f.SortOrder != SortDesc {
		count++
	}
	return count
}

// Apply returns the audits matching f, sorted as requested. now anchors the
// date ranges. The input slice is not modified.
func (f FilterOptions) Apply(audits []domain.Audit, now time.Time) []domain.Audit {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Audit, 0, len(audits))
	for _, a := range audits {
		if search != "" && !strings.Contains(strings.ToLower(a.ProjectName), search) {
			continue
		}
		if f.Status != "" && f.Status != StatusAll && a.Status != f.Status {
			continue
		}
		if !f.matchScore(a) || !f.matchDate(a, now) {
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		less := f.less(out[i], out[j])
		if f.SortOrder == SortAsc {
			return less
		}
		return f.less(out[j], out[i])
	})
	return out
}

func (f FilterOptions) less(a, b domain.Audit) bool {
	switch f.SortBy {
	case SortByScore:
		return scoreKey(a) < scoreKey(b)
	case SortByName:
		return strings.ToLower(a.ProjectName) < strings.ToLower(b.ProjectName)
	default:
		return a.Date.Before(b.Date)
	}
}

// scoreKey orders audits without a score below every scored audit.
func scoreKey(a domain.Audit) int {
	if !a.HasScore() {
		return -1
	}
	return a.Score
}

func (f FilterOptions) matchScore(a domain.Audit) bool {
	if f.ScoreRange == "" || f.ScoreRange == ScoreRangeAll {
		return true
	}
	if !a.HasScore() {
		return false
	}
	return BandOf(a.Score) == f.ScoreRange
}

func (f FilterOptions) matchDate(a domain.Audit, now time.Time) bool {
	var window time.Duration
	switch f.DateRange {
	case DateRangeToday:
		y, m, d := now.Date()
		ay, am, ad := a.Date.In(now.Location()).Date()
		return y == ay && m == am && d == ad
	case DateRangeWeek:
		window = 7 * 24 * time.Hour
	case DateRangeMonth:
		window = 30 * 24 * time.Hour
	default:
		return true
	}
	return !a.Date.Before(now.Add(-window))
}

// BandOf returns the score band a trust score belongs to.
func BandOf(score int) ScoreRange {
	switch {
	case score >= HighScoreThreshold:
		return ScoreRangeHigh
	case score >= MediumScoreThreshold:
		return ScoreRangeMedium
	default:
		return ScoreRangeLow
	}
}

// ParseDateRange validates a date range option.
func ParseDateRange(s string) (DateRange, error) {
	switch r := DateRange(s); r {
	case DateRangeAll, DateRangeToday, DateRangeWeek, DateRangeMonth:
		return r, nil
	}
	return "", fmt.Errorf("unknown date range %q: %w", s, domain.ErrNotValid)
}

// ParseScoreRange validates a score range option.
func ParseScoreRange(s string) (ScoreRange, error) {
	switch r := ScoreRange(s); r {
	case ScoreRangeAll, ScoreRangeHigh, ScoreRangeMedium, ScoreRangeLow:
		return r, nil
	}
	return "", fmt.Errorf("unknown score range %q: %w", s, domain.ErrNotValid)
}

// ParseStatus validates a status filter option.
func ParseStatus(s string) (domain.AuditStatus, error) {
	switch st := domain.AuditStatus(s); st {
	case StatusAll, domain.AuditStatusCompleted, domain.AuditStatusProcessing, domain.AuditStatusFailed:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q: %w", s, domain.ErrNotValid)
}

// ParseSort validates the sort key and direction.
func ParseSort(by, order string) (SortBy, SortOrder, error) {
	var sb SortBy
	switch s := SortBy(by); s {
	case SortByDate, SortByScore, SortByName:
		sb = s
	default:
		return "", "", fmt.Errorf("unknown sort key %q: %w", by, domain.ErrNotValid)
	}
	switch o := SortOrder(order); o {
	case SortAsc, SortDesc:
		return sb, o, nil
	}
	return "", "", fmt.Errorf("unknown sort order %q: %w", order, domain.ErrNotValid)
}

// NextStatus cycles through the status filter values.
func NextStatus(s domain.AuditStatus) domain.AuditStatus {
	switch s {
	case StatusAll:
		return domain.AuditStatusCompleted
	case domain.AuditStatusCompleted:
		return domain.AuditStatusProcessing
	case domain.AuditStatusProcessing:
		return domain.AuditStatusFailed
	default:
		return StatusAll
	}
}

// NextScoreRange cycles through the score range values.
func NextScoreRange(r ScoreRange) ScoreRange {
	switch r {
	case ScoreRangeAll:
		return ScoreRangeHigh
	case ScoreRangeHigh:
		return ScoreRangeMedium
	case ScoreRangeMedium:
		return ScoreRangeLow
	default:
		return ScoreRangeAll
	}
}
