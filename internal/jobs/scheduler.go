package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"scheduler/internal/core/domain/model/job"
	"scheduler/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultProcessEvery = time.Second
	DefaultLockLifetime = 10 * time.Second
)

var (
	_ ports.JobStore  = (*Scheduler)(nil)
	_ ports.JobRunner = (*Scheduler)(nil)
)

// Config tunes the processing tick. Zero values fall back to the defaults.
type Config struct {
	ProcessEvery time.Duration
	LockLifetime time.Duration
}

// PingFunc reports whether the job store is reachable.
type PingFunc func(ctx context.Context) error

type definition struct {
	priority job.Priority
	handler  ports.JobHandler
}

// Scheduler implements ports.JobStore and ports.JobRunner on top of the
// job repository.
type Scheduler struct {
	uowFactory   ports.UnitOfWorkFactory
	ping         PingFunc
	processEvery time.Duration
	lockLifetime time.Duration
	metrics      *Metrics
	logger       *slog.Logger
	now          func() time.Time

	mu          sync.RWMutex
	definitions map[string]definition
	resolve     Resolver
	ready       atomic.Bool

	cron     *cron.Cron
	inFlight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(
	uowFactory ports.UnitOfWorkFactory,
	ping PingFunc,
	cfg Config,
	metrics *Metrics,
	logger *slog.Logger,
) *Scheduler {
	if cfg.ProcessEvery <= 0 {
		cfg.ProcessEvery = DefaultProcessEvery
	}
	if cfg.LockLifetime <= 0 {
		cfg.LockLifetime = DefaultLockLifetime
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		uowFactory:   uowFactory,
		ping:         ping,
		processEvery: cfg.ProcessEvery,
		lockLifetime: cfg.LockLifetime,
		metrics:      metrics,
		logger:       logger.With("component", "job_scheduler"),
		now:          func() time.Time { return time.Now().UTC() },
		definitions:  make(map[string]definition),
		cron:         cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start registers the processing tick and begins processing. resolve assigns
// handlers to persisted job names once the store is ready.
func (s *Scheduler) Start(resolve Resolver) error {
	s.mu.Lock()
	s.resolve = resolve
	s.mu.Unlock()

	spec := fmt.Sprintf("@every %s", s.processEvery)
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("failed to register processing tick: %w", err)
	}

	s.cron.Start()
	s.logger.InfoContext(s.ctx, "Job scheduler started", "process_every", s.processEvery, "lock_lifetime", s.lockLifetime)
	return nil
}

// Stop halts the tick and waits for in-flight executions or for ctx to end,
// whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	<-s.cron.Stop().Done()

	done := make(chan struct{})
	go func() {
		s.inFlight.Wait()
		close(done)
	}()

	defer s.cancel()
	select {
	case <-done:
		s.logger.InfoContext(ctx, "Job scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.WarnContext(ctx, "Job scheduler stopped with jobs still running")
		return ctx.Err()
	}
}

// Define attaches handler to name. A later Define for the same name replaces it.
func (s *Scheduler) Define(name string, priority job.Priority, handler ports.JobHandler) {
	s.mu.Lock()
	s.definitions[name] = definition{priority: priority, handler: handler}
	s.mu.Unlock()

	s.logger.Info("defining job", "job", name, "priority", priority.String())
}

func (s *Scheduler) definition(name string) (definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.definitions[name]
	return d, ok
}

// DefinedNames lists the names that currently have a handler, sorted.
func (s *Scheduler) DefinedNames() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.definitions))
	for name := range s.definitions {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

func (s *Scheduler) tick() {
	ctx := s.ctx
	if !s.ready.Load() {
		if err := s.becomeReady(ctx); err != nil {
			s.logger.ErrorContext(ctx, "error connecting to job store", "error", err)
			return
		}
	}

	names := s.DefinedNames()
	for {
		claimed, err := s.claimNext(ctx, names)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to claim due job", "error", err)
			return
		}
		if claimed == nil {
			return
		}

		s.inFlight.Add(1)
		go func(j *job.Job) {
			defer s.inFlight.Done()
			_, _ = s.Run(ctx, j)
		}(claimed)
	}
}

// becomeReady pings the store and defines a handler for every persisted job
// name that has none yet.
func (s *Scheduler) becomeReady(ctx context.Context) error {
	if err := s.ping(ctx); err != nil {
		return err
	}

	persisted, err := s.Jobs(ctx, job.Filter{})
	if err != nil {
		return err
	}

	s.mu.RLock()
	resolve := s.resolve
	s.mu.RUnlock()

	seen := make(map[string]struct{}, len(persisted))
	for _, j := range persisted {
		name := j.Name()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		if _, ok := s.definition(name); ok || resolve == nil {
			continue
		}
		handler, ok := resolve(name)
		if !ok {
			s.logger.InfoContext(ctx, "leaving job undefined", "job", name)
			continue
		}
		s.Define(name, j.Priority(), handler)
	}

	s.ready.Store(true)
	s.logger.InfoContext(ctx, "Job store ready", "persisted_jobs", len(persisted))
	return nil
}

// claimNext locks the next due document for this process, or returns nil
// when nothing is due.
func (s *Scheduler) claimNext(ctx context.Context, names []string) (*job.Job, error) {
	if len(names) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := s.now()
	repo := uow.JobRepository()
	next, err := repo.FindNextDue(ctx, names, now, s.lockLifetime)
	if err != nil || next == nil {
		return nil, err
	}

	next.Lock(now)
	if err = repo.Update(ctx, next); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}
