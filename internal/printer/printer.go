package printer

import (
	"time"

	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/progress"
)

// Printer knows how to print audit information in different formats.
type Printer interface {
	PrintList(audits []domain.Audit, stats domain.Stats) error
	PrintReport(audit domain.Audit) error
	PrintSnapshot(snapshot progress.Snapshot) error
}

// auditOutput is the serialised shape of an audit report.
type auditOutput struct {
	ID                string                  `json:"id" yaml:"id"`
	ProjectName       string                  `json:"project_name" yaml:"project_name"`
	Description       string                  `json:"description,omitempty" yaml:"description,omitempty"`
	Status            string                  `json:"status" yaml:"status"`
	Score             *int                    `json:"score" yaml:"score"`
	Date              time.Time               `json:"date" yaml:"date"`
	CodeToIntentMatch int                     `json:"code_to_intent_match,omitempty" yaml:"code_to_intent_match,omitempty"`
	Vulnerabilities   []vulnerabilityOutput   `json:"vulnerabilities,omitempty" yaml:"vulnerabilities,omitempty"`
	GasOptimizations  []gasOptimizationOutput `json:"gas_optimizations,omitempty" yaml:"gas_optimizations,omitempty"`
	Certificate       *certificateOutput      `json:"certificate,omitempty" yaml:"certificate,omitempty"`
}

type certificateOutput struct {
	TokenID  string    `json:"token_id" yaml:"token_id"`
	MintedAt time.Time `json:"minted_at" yaml:"minted_at"`
}

type vulnerabilityOutput struct {
	Severity       string `json:"severity" yaml:"severity"`
	Title          string `json:"title" yaml:"title"`
	Line           int    `json:"line" yaml:"line"`
	Description    string `json:"description" yaml:"description"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

type gasOptimizationOutput struct {
	Title          string  `json:"title" yaml:"title"`
	Description    string  `json:"description" yaml:"description"`
	CurrentGas     int     `json:"current_gas" yaml:"current_gas"`
	OptimizedGas   int     `json:"optimized_gas" yaml:"optimized_gas"`
	SavingsPercent float64 `json:"savings_percent" yaml:"savings_percent"`
}

// listItem is the serialised shape of an audit in a list (subset of fields).
type listItem struct {
	ID              string    `json:"id" yaml:"id"`
	ProjectName     string    `json:"project_name" yaml:"project_name"`
	Status          string    `json:"status" yaml:"status"`
	Score           *int      `json:"score" yaml:"score"`
	Vulnerabilities *int      `json:"vulnerabilities" yaml:"vulnerabilities"`
	Date            time.Time `json:"date" yaml:"date"`
}

type listOutput struct {
	Audits []listItem  `json:"audits" yaml:"audits"`
	Stats  statsOutput `json:"stats" yaml:"stats"`
}

type statsOutput struct {
	Total           int `json:"total" yaml:"total"`
	Completed       int `json:"completed" yaml:"completed"`
	Processing      int `json:"processing" yaml:"processing"`
	AverageScore    int `json:"average_score" yaml:"average_score"`
	Vulnerabilities int `json:"vulnerabilities" yaml:"vulnerabilities"`
	GasSaved        int `json:"gas_saved" yaml:"gas_saved"`
	Certificates    int `json:"certificates" yaml:"certificates"`
}

type snapshotOutput struct {
	Percent    int    `json:"percent" yaml:"percent"`
	Stage      string `json:"stage" yaml:"stage"`
	StageIndex int    `json:"stage_index" yaml:"stage_index"`
	StageCount int    `json:"stage_count" yaml:"stage_count"`
	State      string `json:"state" yaml:"state"`
	Running    bool   `json:"running" yaml:"running"`
}

func toAuditOutput(a domain.Audit) auditOutput {
	out := auditOutput{
		ID:          a.ID,
		ProjectName: a.ProjectName,
		Description: a.Description,
		Status:      string(a.Status),
		Date:        a.Date,
	}
	if a.HasScore() {
		score := a.Score
		out.Score = &score
		out.CodeToIntentMatch = a.CodeToIntentMatch
	}
	for _, v := range a.Vulnerabilities {
		out.Vulnerabilities = append(out.Vulnerabilities, vulnerabilityOutput{
			Severity:       string(v.Severity),
			Title:          v.Title,
			Line:           v.Line,
			Description:    v.Description,
			Recommendation: v.Recommendation,
		})
	}
	for _, g := range a.GasOptimizations {
		out.GasOptimizations = append(out.GasOptimizations, gasOptimizationOutput{
			Title:          g.Title,
			Description:    g.Description,
			CurrentGas:     g.CurrentGas,
			OptimizedGas:   g.OptimizedGas,
			SavingsPercent: g.SavingsPercent(),
		})
	}
	if c := a.Certificate; c != nil {
		out.Certificate = &certificateOutput{TokenID: c.TokenID, MintedAt: c.MintedAt}
	}
	return out
}

func toListOutput(audits []domain.Audit, stats domain.Stats) listOutput {
	items := make([]listItem, len(audits))
	for i, a := range audits {
		items[i] = listItem{
			ID:          a.ID,
			ProjectName: a.ProjectName,
			Status:      string(a.Status),
			Date:        a.Date,
		}
		if a.HasScore() {
			score, vulns := a.Score, a.VulnerabilityCount()
			items[i].Score = &score
			items[i].Vulnerabilities = &vulns
		}
	}
	return listOutput{
		Audits: items,
		Stats: statsOutput{
			Total:           stats.Total,
			Completed:       stats.Completed,
			Processing:      stats.Processing,
			AverageScore:    stats.AverageScore,
			Vulnerabilities: stats.Vulnerabilities,
			GasSaved:        stats.GasSaved,
			Certificates:    stats.Certificates,
		},
	}
}

func toSnapshotOutput(s progress.Snapshot) snapshotOutput {
	return snapshotOutput{
		Percent:    s.Percent,
		Stage:      s.Stage.Label,
		StageIndex: s.StageIndex,
		StageCount: s.StageCount,
		State:      string(s.State),
		Running:    s.Running(),
	}
}
