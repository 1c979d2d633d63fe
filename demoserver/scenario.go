package demoserver

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// Outcome is the response class a demo route answers with.
type Outcome int

const (
	OutcomeBadRequest Outcome = iota
	OutcomeServerError
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBadRequest:
		return "bad_request"
	case OutcomeServerError:
		return "server_error"
	case OutcomeSuccess:
		return "success"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Scenario picks the outcome of each request to path.
type Scenario interface {
	Pick(path string) Outcome
}

// RandomScenario picks each outcome with equal probability. It is safe for
// concurrent use.
type RandomScenario struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomScenario creates a RandomScenario. A zero seed uses the clock.
func NewRandomScenario(seed uint64) *RandomScenario {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomScenario{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns one of the three outcomes uniformly.
func (s *RandomScenario) Pick(string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Outcome(s.rng.IntN(3))
}

// FixedScenario always answers the same outcome.
type FixedScenario Outcome

// Pick returns the fixed outcome.
func (s FixedScenario) Pick(string) Outcome { return Outcome(s) }

// SequenceScenario cycles through outcomes in order, separately per path.
type SequenceScenario struct {
	mu       sync.Mutex
	outcomes []Outcome
	next     map[string]int
}

// NewSequenceScenario creates a SequenceScenario. It panics without
// outcomes.
func NewSequenceScenario(outcomes ...Outcome) *SequenceScenario {
	if len(outcomes) == 0 {
		panic("demoserver: sequence scenario needs at least one outcome")
	}
	return &SequenceScenario{outcomes: slices.Clone(outcomes), next: make(map[string]int)}
}

// Pick returns the next outcome for path.
func (s *SequenceScenario) Pick(path string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.next[path]
	s.next[path] = (i + 1) % len(s.outcomes)
	return s.outcomes[i]
}
