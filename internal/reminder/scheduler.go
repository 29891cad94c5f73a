package reminder

import (
	"sync"
	"time"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
)

// Default timer intervals for the two periodic checks.
const (
	DefaultTickInterval     = 30 * time.Second
	DefaultMidnightInterval = 60 * time.Second
)

// SchedulerConfig carries the timing knobs so tests can shrink them.
type SchedulerConfig struct {
	TickInterval     time.Duration
	MidnightInterval time.Duration
	WindowMinutes    int
}

// Scheduler drives the reminder pipeline: on every tick it evaluates the
// latest task snapshots against the policy, matches trigger windows, checks
// the dedup ledger, and dispatches. A second, lower-frequency timer watches
// for the local-midnight rollover and clears the ledger.
//
// Snapshots are held in mutable fields behind setters so upstream syncs can
// refresh data without touching the timers' lifecycle.
type Scheduler struct {
	mu    sync.Mutex
	today []model.Task
	week  []model.Task

	policy     *Policy
	ledger     *Ledger
	dispatcher *Dispatcher

	tickInterval     time.Duration
	midnightInterval time.Duration
	window           int

	now func() time.Time

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler creates a stopped scheduler. Zero config fields fall back
// to the defaults.
func NewScheduler(policy *Policy, ledger *Ledger, dispatcher *Dispatcher, cfg SchedulerConfig) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.MidnightInterval <= 0 {
		cfg.MidnightInterval = DefaultMidnightInterval
	}
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = DefaultWindowMinutes
	}

	return &Scheduler{
		policy:           policy,
		ledger:           ledger,
		dispatcher:       dispatcher,
		tickInterval:     cfg.TickInterval,
		midnightInterval: cfg.MidnightInterval,
		window:           cfg.WindowMinutes,
		now:              time.Now,
	}
}

// SetSnapshot replaces the task lists the next tick will evaluate. Safe to
// call at any time, including while the scheduler is running.
func (s *Scheduler) SetSnapshot(today, week []model.Task) {
	s.mu.Lock()
	s.today = today
	s.week = week
	s.mu.Unlock()
}

// Start launches both timers and runs one immediate tick. Calling Start on
// a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.loop()
}

// Stop cancels both timers and waits for the loop to exit. Calling Stop on
// a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
}

// loop owns the two tickers. Each callback runs to completion before the
// next is handled, so the ledger's check-then-mark sequence never races
// with itself.
func (s *Scheduler) loop() {
	defer close(s.doneCh)

	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()
	midnight := time.NewTicker(s.midnightInterval)
	defer midnight.Stop()

	// Immediate evaluation on start, matching the mount-time check.
	s.safeTick(s.now())

	for {
		select {
		case <-s.stopCh:
			return
		case <-tick.C:
			s.safeTick(s.now())
		case <-midnight.C:
			s.CheckMidnight(s.now())
		}
	}
}

// safeTick runs one tick, containing any panic so a bad snapshot can never
// take down the host application.
func (s *Scheduler) safeTick(now time.Time) {
	defer func() {
		_ = recover()
	}()
	s.Tick(now)
}

// Tick runs the full evaluation pipeline once against the latest snapshot.
// Tasks appearing in both the today and week lists are evaluated once,
// first occurrence wins.
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	tasks := make([]model.Task, 0, len(s.today)+len(s.week))
	tasks = append(tasks, s.today...)
	tasks = append(tasks, s.week...)
	s.mu.Unlock()

	defaults := s.policy.Offsets()

	seen := make(map[int64]struct{}, len(tasks))
	for _, task := range tasks {
		if _, dup := seen[task.ID]; dup {
			continue
		}
		seen[task.ID] = struct{}{}

		if task.IsCompleted || !task.HasDeadline() {
			continue
		}

		minutesUntilDue, ok := Evaluate(now, task.DueDate, task.DueTime)
		if !ok {
			continue
		}

		offsets := EffectiveOffsets(task, defaults)
		if len(offsets) == 0 {
			continue
		}

		for _, offset := range Match(minutesUntilDue, offsets, s.window) {
			key := NewKey(task, offset)
			if s.ledger.Has(key) {
				continue
			}
			s.ledger.Mark(key)
			s.dispatcher.Dispatch(task, offset)
		}
	}
}

// CheckMidnight clears the ledger when the wall clock reads 00:00. The
// check is best-effort: with a one-minute timer it observes each rollover
// at most once, and a missed clear is backstopped by the deadline embedded
// in every ledger key.
func (s *Scheduler) CheckMidnight(now time.Time) {
	if now.Hour() == 0 && now.Minute() == 0 {
		s.ledger.Clear()
	}
}
