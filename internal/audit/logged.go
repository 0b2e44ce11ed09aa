package audit

import (
	"github.com/waabox/auditdeck/internal/domain"
	"github.com/waabox/auditdeck/internal/log"
)

// LoggedRepository wraps an AuditRepository and logs every lookup and failure.
type LoggedRepository struct {
	inner  domain.AuditRepository
	logger log.Logger
}

var _ domain.AuditRepository = (*LoggedRepository)(nil)

// NewLoggedRepository creates a LoggedRepository.
func NewLoggedRepository(inner domain.AuditRepository, logger log.Logger) *LoggedRepository {
	if logger == nil {
		logger = log.Noop
	}
	return &LoggedRepository{
		inner:  inner,
		logger: logger.WithValues(log.Kv{"svc": "audit.Repository"}),
	}
}

func (r *LoggedRepository) ListAudits() ([]domain.Audit, error) {
	audits, err := r.inner.ListAudits()
	if err != nil {
		r.logger.Errorf("Could not list audits: %s", err)
		return nil, err
	}
	r.logger.Debugf("Listed %d audits", len(audits))
	return audits, nil
}

func (r *LoggedRepository) GetAudit(id string) (domain.Audit, error) {
	a, err := r.inner.GetAudit(id)
	if err != nil {
		r.logger.WithValues(log.Kv{"audit": id}).Warningf("Could not get audit: %s", err)
		return domain.Audit{}, err
	}
	r.logger.WithValues(log.Kv{"audit": id}).Debugf("Audit loaded")
	return a, nil
}
