package domain

import (
	"strings"
	"time"
)

// AuditStatus represents the processing state of an audit.
type AuditStatus string

const (
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusProcessing AuditStatus = "processing"
	AuditStatusFailed     AuditStatus = "failed"
)

// Severity ranks a vulnerability finding.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Vulnerability is a single security finding within an audit report.
type Vulnerability struct {
	ID             int
	Severity       Severity
	Title          string
	Description    string
	Line           int
	Recommendation string
}

// GasOptimization is a suggested change that reduces gas consumption.
type GasOptimization struct {
	ID           int
	Title        string
	Description  string
	CurrentGas   int
	OptimizedGas int
}

// SavingsPercent returns the relative gas saving, rounded to one decimal.
func (g GasOptimization) SavingsPercent() float64 {
	if g.CurrentGas <= 0 {
		return 0
	}
	saved := float64(g.CurrentGas-g.OptimizedGas) / float64(g.CurrentGas) * 100
	return float64(int(saved*10+0.5)) / 10
}

// Audit represents one audit of a smart contract, from submission to report.
type Audit struct {
	ID                string
	ProjectName       string
	Description       string
	Status            AuditStatus
	Score             int
	Date              time.Time
	Vulnerabilities   []Vulnerability
	GasOptimizations  []GasOptimization
	CodeToIntentMatch int
	SourceCode        string
	Certificate       *Certificate
}

// Certificate is the Proof of Integrity token minted for a completed audit.
type Certificate struct {
	TokenID  string
	MintedAt time.Time
}

// NewCertificate creates the certificate of an audit. The token id is "#SS-"
// followed by the audit id without its "audit-" prefix.
func NewCertificate(auditID string, mintedAt time.Time) Certificate {
	return Certificate{
		TokenID:  "#SS-" + strings.TrimPrefix(auditID, "audit-"),
		MintedAt: mintedAt,
	}
}

// GasSaved returns the gas saved by applying every optimization of the audit.
func (a Audit) GasSaved() int {
	saved := 0
	for _, g := range a.GasOptimizations {
		saved += g.CurrentGas - g.OptimizedGas
	}
	return saved
}

// HasScore reports whether the audit has produced a trust score yet.
func (a Audit) HasScore() bool {
	return a.Status == AuditStatusCompleted
}

// VulnerabilityCount returns the number of findings, or -1 while no report exists.
func (a Audit) VulnerabilityCount() int {
	if !a.HasScore() {
		return -1
	}
	return len(a.Vulnerabilities)
}

// Stats aggregates dashboard figures over a set of audits.
type Stats struct {
	Total           int
	Completed       int
	Processing      int
	AverageScore    int
	Vulnerabilities int
	GasSaved        int
	Certificates    int
}
