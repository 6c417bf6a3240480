// Package health evaluates named checks into a report that the gRPC health
// service publishes.
package health

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a check or the whole service
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// DefaultCheckTimeout bounds a single check when the registry has no
// explicit timeout
const DefaultCheckTimeout = 2 * time.Second

func (s Status) severity() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	case StatusUnhealthy:
		return 3
	default:
		return 2
	}
}

// Worst returns the more severe of a and b. Unknown ranks between degraded
// and unhealthy.
func Worst(a, b Status) Status {
	if b.severity() > a.severity() {
		return b
	}
	return a
}

// CheckResult is the outcome of one check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is a named health check
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type checker struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

func (c checker) Name() string { return c.name }

func (c checker) Check(ctx context.Context) CheckResult { return c.fn(ctx) }

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return checker{name: name, fn: fn}
}

// Registry holds the checks of one service and remembers the last report
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	service  string
	version  string
	timeout  time.Duration
	startAt  time.Time
	last     *Report
}

// NewRegistry creates an empty registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		service:  service,
		version:  version,
		timeout:  DefaultCheckTimeout,
		startAt:  time.Now(),
	}
}

// SetCheckTimeout bounds each check; non-positive values restore the
// default
func (r *Registry) SetCheckTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultCheckTimeout
	}
	r.mu.Lock()
	r.timeout = d
	r.mu.Unlock()
}

// Register adds or replaces a checker
func (r *Registry) Register(c Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[c.Name()] = c
}

// RegisterFunc adds a check function
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context) CheckResult) {
	r.Register(NewChecker(name, fn))
}

// Unregister removes a checker
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkers, name)
}

// Check runs every check concurrently, each under the check timeout, and
// returns the combined report sorted by check name. A registry without
// checks is healthy.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checkers := make([]Checker, 0, len(r.checkers))
	for _, c := range r.checkers {
		checkers = append(checkers, c)
	}
	timeout := r.timeout
	r.mu.RUnlock()

	results := make([]CheckResult, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Add(1)
		go func(i int, c Checker) {
			defer wg.Done()
			results[i] = runCheck(ctx, c, timeout)
		}(i, c)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Status:    StatusHealthy,
		Uptime:    time.Since(r.startAt),
		Timestamp: time.Now(),
		Checks:    results,
	}
	for _, res := range results {
		report.Status = Worst(report.Status, res.Status)
	}

	r.mu.Lock()
	r.last = report
	r.mu.Unlock()
	return report
}

func runCheck(ctx context.Context, c Checker, timeout time.Duration) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res := c.Check(ctx)
	res.Duration = time.Since(start)
	res.Timestamp = time.Now()
	if res.Name == "" {
		res.Name = c.Name()
	}
	if res.Status == "" {
		res.Status = StatusUnknown
	}
	return res
}

// Last returns the most recent report, nil before the first Check
func (r *Registry) Last() *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// Report is the combined result of all checks
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Failing returns the checks that are not healthy
func (r *Report) Failing() []CheckResult {
	var out []CheckResult
	for _, c := range r.Checks {
		if c.Status != StatusHealthy {
			out = append(out, c)
		}
	}
	return out
}

// String returns a one-line summary
func (r *Report) String() string {
	return fmt.Sprintf("%s %s: %s (%d checks, %d failing, up %s)",
		r.Service, r.Version, r.Status, len(r.Checks), len(r.Failing()), r.Uptime.Round(time.Second))
}

// ProbeCheck creates a check that is healthy when probe returns nil. A
// probe still running when ctx ends is reported unhealthy.
func ProbeCheck(name string, probe func(ctx context.Context) error) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		done := make(chan error, 1)
		go func() { done <- probe(ctx) }()

		select {
		case err := <-done:
			if err != nil {
				return CheckResult{Name: name, Status: StatusUnhealthy, Message: err.Error()}
			}
			return CheckResult{Name: name, Status: StatusHealthy, Message: "probe passed"}
		case <-ctx.Done():
			return CheckResult{Name: name, Status: StatusUnhealthy, Message: "probe timed out: " + ctx.Err().Error()}
		}
	})
}

// CapacityCheck creates a check that reports degraded once used() reaches
// 90 percent of capacity
func CapacityCheck(name string, used func() int, capacity int) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		n := used()
		result := CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Details: map[string]interface{}{"used": n, "capacity": capacity},
		}
		if capacity > 0 && n*10 >= capacity*9 {
			result.Status = StatusDegraded
			result.Message = fmt.Sprintf("%d of %d used", n, capacity)
		}
		return result
	})
}
