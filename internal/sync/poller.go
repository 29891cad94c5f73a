package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ChoiBongGeun/DailyQuest/internal/model"
	"github.com/ChoiBongGeun/DailyQuest/internal/reminder"
	"github.com/ChoiBongGeun/DailyQuest/internal/source"
	"github.com/ChoiBongGeun/DailyQuest/internal/store"
)

// SyncState represents the current state of a sync operation.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncResultMsg is a tea.Msg sent when a sync pass completes.
type SyncResultMsg struct {
	Snapshot     *source.Snapshot
	Error        error
	AuthError    bool
	NewTaskCount int
	LastSync     time.Time
}

// fetchTimeout is the maximum time allowed for a single sync pass.
const fetchTimeout = 30 * time.Second

// Poller periodically syncs the task snapshot from the backend, refreshes
// the local cache, and hands the fresh snapshot to the reminder scheduler.
// The scheduler's timers never restart on data refresh; only its snapshot
// fields are updated.
type Poller struct {
	store     store.Store
	src       source.Source
	scheduler *reminder.Scheduler
	interval  time.Duration
	resultCh  chan SyncResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
	lastSync  time.Time
}

// New creates a poller syncing src into s every interval, feeding sched.
func New(s store.Store, src source.Source, sched *reminder.Scheduler, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 120 * time.Second
	}
	return &Poller{
		store:     s,
		src:       src,
		scheduler: sched,
		interval:  interval,
		resultCh:  make(chan SyncResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a tea.Cmd that waits
// for the first sync result.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.run()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate sync pass.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A refresh is already pending.
	}
	return nil
}

// run is the polling loop: an initial sync, then one per interval or
// manual trigger.
func (p *Poller) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.syncOnce()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.syncOnce()
		case <-p.triggerCh:
			p.syncOnce()
		}
	}
}

// syncOnce performs one sync pass: fetch, cache, feed the scheduler, and
// record notification-center entries for newly appeared tasks.
func (p *Poller) syncOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	snap, err := p.src.FetchSnapshot(ctx)
	if err != nil {
		p.sendResult(SyncResultMsg{
			Error:     err,
			AuthError: source.IsAuthError(err),
		})
		return
	}

	newCount := p.countNewTasks(ctx, snap)

	for bucket, tasks := range map[string][]model.Task{
		model.BucketToday:   snap.Today,
		model.BucketWeek:    snap.Week,
		model.BucketOverdue: snap.Overdue,
	} {
		if err := p.store.ReplaceBucket(ctx, bucket, tasks); err != nil {
			p.sendResult(SyncResultMsg{Error: err})
			return
		}
	}

	if projects, err := p.src.FetchProjects(ctx); err == nil {
		_ = p.store.ReplaceProjects(ctx, projects)
	}

	// Feed the reminder engine without touching its timers.
	p.scheduler.SetSnapshot(snap.Today, snap.Week)

	now := time.Now()
	p.mu.Lock()
	p.lastSync = now
	p.mu.Unlock()

	p.sendResult(SyncResultMsg{
		Snapshot:     snap,
		NewTaskCount: newCount,
		LastSync:     now,
	})
}

// countNewTasks records a notification-center row for every task not seen
// in the cache before, and returns how many there were.
func (p *Poller) countNewTasks(ctx context.Context, snap *source.Snapshot) int {
	existing := make(map[int64]struct{})
	for _, bucket := range []string{model.BucketToday, model.BucketWeek, model.BucketOverdue} {
		tasks, err := p.store.GetBucket(ctx, bucket)
		if err != nil {
			continue
		}
		for _, t := range tasks {
			existing[t.ID] = struct{}{}
		}
	}

	// First run: an empty cache means everything is "new"; stay quiet.
	if len(existing) == 0 {
		return 0
	}

	count := 0
	seen := make(map[int64]struct{})
	for _, tasks := range [][]model.Task{snap.Today, snap.Week, snap.Overdue} {
		for _, t := range tasks {
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}

			if _, known := existing[t.ID]; known {
				continue
			}

			count++
			_ = p.store.CreateNotification(ctx, model.Notification{
				ID:        uuid.New().String(),
				TaskID:    t.ID,
				Message:   "새 할 일: " + t.Title,
				CreatedAt: time.Now(),
			})
		}
	}
	return count
}

// sendResult sends a SyncResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the poller.
	}
}

// waitForResult returns a tea.Cmd that waits for the next sync result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next sync result.
// Call after processing a SyncResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
