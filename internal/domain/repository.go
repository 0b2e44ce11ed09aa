package domain

// AuditRepository is the port interface the dashboard and report views read audits from.
// The domain does not know whether audits come from mock data or a real service.
type AuditRepository interface {
	ListAudits() ([]Audit, error)
	GetAudit(id string) (Audit, error)
}
