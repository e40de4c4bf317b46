package bootstrap

import (
	"context"

	"github.com/proseby/devkit/internal/logger"
	"github.com/proseby/devkit/internal/presenter"
)

// Step is one unit of the procedure.
type Step struct {
	Description string
	Run         func(ctx context.Context) error
}

// StepError is returned for the step that aborted the procedure.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + " failed: " + e.Err.Error()
}

func (e *StepError) Unwrap() error { return e.Err }

// Procedure executes Steps in order and stops at the first failure.
type Procedure struct {
	Steps []Step
	Out   presenter.Presenter
}

// Run executes every step. On failure it reports the step through Out and
// returns a *StepError.
func (p *Procedure) Run(ctx context.Context) error {
	for i, s := range p.Steps {
		log := logger.G(ctx).WithField("step", s.Description).WithField("index", i+1)
		log.Debug("step started")

		if err := s.Run(ctx); err != nil {
			serr := &StepError{Step: s.Description, Err: err}
			p.Out.Error(serr, "")
			log.WithError(err).Debug("step failed")
			return serr
		}
		log.Debug("step finished")
	}
	return nil
}
