package services

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
	"wind-route-service/internal/domain"
)

// frontierItem is one entry of the open set. Entries are never updated in
// place: an improved g pushes a fresh entry and the older one goes stale.
type frontierItem struct {
	index int
	g     float64
	f     float64
	seq   uint64
}

// frontier is a binary min-heap ordered by f, ties broken by insertion order.
type frontier []frontierItem

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(frontierItem)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// timeCheckInterval is how many pops happen between wall clock checks.
const timeCheckInterval = 64

// searcher holds the per-call state of one A* run. It is never shared between
// goroutines; the forecast it reads is.
type searcher struct {
	forecast *domain.Forecast
	vessel   domain.VesselProfile
	goal     domain.GridPoint
	opts     options
	debug    bool

	g      []float64
	h      []float64
	prev   []int
	closed []bool

	open     frontier
	seq      uint64
	expanded int
	goalIdx  int
}

func newSearcher(f *domain.Forecast, vessel domain.VesselProfile, goal domain.GridPoint, opts options) *searcher {
	n := f.Grid.Cells()
	s := &searcher{
		forecast: f,
		vessel:   vessel,
		goal:     goal,
		opts:     opts,
		debug:    opts.logger.Enabled(context.Background(), slog.LevelDebug),
		g:        make([]float64, n),
		h:        make([]float64, n),
		prev:     make([]int, n),
		closed:   make([]bool, n),
		goalIdx:  f.Grid.Index(goal),
	}
	for i := range s.g {
		s.g[i] = math.Inf(1)
		s.h[i] = math.NaN()
		s.prev[i] = -1
	}
	return s
}

func (s *searcher) estimate(idx int) float64 {
	if math.IsNaN(s.h[idx]) {
		p := s.forecast.Grid.Point(idx)
		s.h[idx] = s.opts.heuristicWeight * heuristic(s.forecast, s.vessel, p, s.goal)
	}
	return s.h[idx]
}

func (s *searcher) push(idx int, g float64) {
	s.seq++
	heap.Push(&s.open, frontierItem{index: idx, g: g, f: g + s.estimate(idx), seq: s.seq})
}

func (s *searcher) budgetExhausted(start time.Time, pops int) bool {
	if s.opts.maxExpansions > 0 && s.expanded >= s.opts.maxExpansions {
		return true
	}
	if s.opts.timeBudget > 0 && pops%timeCheckInterval == 0 && time.Since(start) >= s.opts.timeBudget {
		return true
	}
	return false
}

// run searches from origin until the goal is popped, the open set drains or
// the budget runs out.
func (s *searcher) run(origin domain.GridPoint, start time.Time) (domain.SolutionStatus, error) {
	grid := s.forecast.Grid
	mask := s.forecast.Mask

	originIdx := grid.Index(origin)
	s.g[originIdx] = 0
	s.push(originIdx, 0)

	neighbors := make([]domain.GridPoint, 0, len(neighborOffsets))
	pops := 0

	for s.open.Len() > 0 {
		item := heap.Pop(&s.open).(frontierItem)
		if item.g > s.g[item.index] || s.closed[item.index] {
			continue
		}
		pops++

		u := grid.Point(item.index)
		if s.opts.onExpand != nil {
			s.opts.onExpand(u, item.g, item.f)
		}
		if item.index == s.goalIdx {
			return domain.StatusFound, nil
		}
		if s.budgetExhausted(start, pops) {
			return domain.StatusBudgetExhausted, nil
		}

		s.closed[item.index] = true
		s.expanded++

		neighbors = appendNeighbors(neighbors[:0], grid, mask, u)
		for _, v := range neighbors {
			c := edgeCost(s.forecast, s.vessel, u, v)
			if s.debug {
				s.opts.logger.Debug("edge priced", "from", u.String(), "to", v.String(), "cost", c)
			}
			switch {
			case math.IsNaN(c), math.IsInf(c, 1):
				continue
			case c < 0:
				return "", fmt.Errorf("%w: %s -> %s priced %g", domain.ErrNegativeCost, u, v, c)
			}

			vi := grid.Index(v)
			ng := item.g + c
			if ng < s.g[vi] {
				s.g[vi] = ng
				s.prev[vi] = item.index
				// An improved closed node goes back on the open set.
				s.closed[vi] = false
				s.push(vi, ng)
			}
		}
	}
	return domain.StatusNoRoute, nil
}

// path walks the predecessor chain back from the goal.
func (s *searcher) path() []domain.GridPoint {
	var rev []domain.GridPoint
	for idx := s.goalIdx; idx >= 0; idx = s.prev[idx] {
		rev = append(rev, s.forecast.Grid.Point(idx))
	}
	out := make([]domain.GridPoint, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}
