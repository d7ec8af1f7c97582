// Package health aggregates component checks into one report.
package health

import (
	"context"
	"errors"

	"github.com/unidesk-ai/unidesk/internal/domain"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service answers but with reduced capability.
	Degraded Status = "degraded"
	// Unhealthy indicates the service cannot answer at all.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckAbsent indicates the index has not been built yet.
	CheckAbsent CheckResult = "absent"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
	index     IndexChecker
}

// New creates a Service. embedding and index can be nil.
func New(db DBPinger, embedding EmbeddingChecker, index IndexChecker) *Service {
	return &Service{db: db, embedding: embedding, index: index}
}

// Check runs health checks against all components. A database failure makes
// the service unhealthy; everything else only degrades it. An index that was
// never built reports as absent, which is degraded but expected before the
// first rebuild.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		status = Unhealthy
	} else {
		checks["database"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	if s.index != nil {
		switch _, err := s.index.Check(ctx); {
		case err == nil:
			checks["index"] = CheckOK
		case errors.Is(err, domain.ErrIndexAbsent):
			checks["index"] = CheckAbsent
		default:
			checks["index"] = CheckError
		}
	}

	if status == Healthy {
		for _, v := range checks {
			if v != CheckOK {
				status = Degraded
				break
			}
		}
	}

	return Report{Status: status, Checks: checks}
}
