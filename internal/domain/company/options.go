package company

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps and date defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides id minting for companies, applications and notes.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithJobIDGenerator overrides the generator for blank job labels.
func WithJobIDGenerator(newJobID func() string) Option {
	return func(s *Service) { s.newJobID = newJobID }
}

// NewJobID returns a display label of the form JOB-0042.
func NewJobID() string {
	return fmt.Sprintf("JOB-%04d", rand.IntN(10000))
}

func defaultOptions(s *Service) {
	s.now = time.Now
	s.newID = uuid.NewString
	s.newJobID = NewJobID
}
