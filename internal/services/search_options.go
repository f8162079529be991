package services

import (
	"fmt"
	"log/slog"
	"math"
	"time"
	"wind-route-service/internal/domain"
)

// Option customizes a single Resolve call.
type Option func(*options)

// ExpansionHook observes every node popped from the frontier, with its cost
// so far (g) and its priority (f = g + weighted heuristic).
type ExpansionHook func(p domain.GridPoint, g, f float64)

type options struct {
	heuristicWeight float64
	maxExpansions   int
	timeBudget      time.Duration
	logger          *slog.Logger
	onExpand        ExpansionHook
}

func defaultOptions() options {
	return options{
		heuristicWeight: 1,
		logger:          slog.Default(),
	}
}

// WithHeuristicWeight scales the heuristic. 1 reproduces the plain average
// speed estimate, which may overestimate when favourable wind makes legs
// cheaper than average; 0 degrades A* to Dijkstra and guarantees an optimal
// route. Panics on a negative or non-finite weight.
func WithHeuristicWeight(w float64) Option {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		panic(fmt.Sprintf("services: heuristic weight must be finite and non-negative, got %g", w))
	}
	return func(o *options) { o.heuristicWeight = w }
}

// WithMaxExpansions stops the search with StatusBudgetExhausted after n node
// expansions. n <= 0 means unlimited.
func WithMaxExpansions(n int) Option {
	return func(o *options) { o.maxExpansions = n }
}

// WithTimeBudget stops the search with StatusBudgetExhausted once d of wall
// clock time has elapsed. d <= 0 means unlimited.
func WithTimeBudget(d time.Duration) Option {
	return func(o *options) { o.timeBudget = d }
}

// WithLogger routes search logging to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithExpansionHook registers fn to be called for every popped node.
func WithExpansionHook(fn ExpansionHook) Option {
	return func(o *options) { o.onExpand = fn }
}

// SearchSettings is the configuration-friendly form of the search options.
type SearchSettings struct {
	HeuristicWeight float64
	MaxExpansions   int
	TimeBudget      time.Duration
}

// DefaultSearchSettings matches the behavior of Resolve without options.
func DefaultSearchSettings() SearchSettings {
	return SearchSettings{HeuristicWeight: 1}
}

// Validate reports settings that Options would reject.
func (s SearchSettings) Validate() error {
	if s.HeuristicWeight < 0 || math.IsNaN(s.HeuristicWeight) || math.IsInf(s.HeuristicWeight, 0) {
		return fmt.Errorf("heuristic weight must be finite and non-negative, got %g", s.HeuristicWeight)
	}
	return nil
}

// Options converts s into Resolve options. s must be valid.
func (s SearchSettings) Options() []Option {
	return []Option{
		WithHeuristicWeight(s.HeuristicWeight),
		WithMaxExpansions(s.MaxExpansions),
		WithTimeBudget(s.TimeBudget),
	}
}
