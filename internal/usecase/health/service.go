// Package health aggregates component health checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// Check is an individual component outcome. Error is empty when passing.
type Check struct {
	Status Status
	Error  string
}

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]Check
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when no provider is configured.
func New(db DBPinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, embedding: embedding}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]Check)

	checks["database"] = runCheck(ctx, s.db.Ping)

	if s.embedding != nil {
		checks["embedding"] = runCheck(ctx, s.embedding.HealthCheck)
	}

	status := Healthy
	for _, c := range checks {
		if c.Status != Healthy {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

func runCheck(ctx context.Context, fn func(context.Context) error) Check {
	if err := fn(ctx); err != nil {
		return Check{Status: Degraded, Error: err.Error()}
	}
	return Check{Status: Healthy}
}
