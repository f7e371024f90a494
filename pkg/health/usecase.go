package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Status is the outcome of one checker.
type Status struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready runs every checker; the error joins all failures.
	Ready(ctx context.Context) ([]Status, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) ([]Status, error) {
	statuses := make([]Status, 0, len(s.checkers))
	var errs []error
	for _, ch := range s.checkers {
		st := Status{Name: ch.Name(), OK: true}
		if err := ch.Check(ctx); err != nil {
			st.OK = false
			st.Error = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
		statuses = append(statuses, st)
	}
	return statuses, errors.Join(errs...)
}
