package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/scorewise/predictions-api/internal/platform/logging"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// Pinger reports whether the backing database is reachable. *sqlx.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Job is one periodic task. Run receives the scheduler's base context and
// must honor cancellation.
type Job struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

type managedJob struct {
	job Job
	mu  sync.Mutex
}

// Scheduler drives registered jobs on their own tickers. Each job runs at
// most once at a time: a tick that fires while the previous run is still in
// flight is skipped, as is any tick while the database is unreachable.
type Scheduler struct {
	pinger Pinger
	logger *logging.Logger
	jobs   []*managedJob
	wg     conc.WaitGroup
}

func New(pinger Pinger, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		pinger: pinger,
		logger: logger,
	}
}

// Register adds a job. Jobs without a name, interval or run func are ignored.
func (s *Scheduler) Register(job Job) {
	if job.Name == "" || job.Interval <= 0 || job.Run == nil {
		s.logger.Warn("ignoring misconfigured scheduler job", "job", job.Name)
		return
	}
	s.jobs = append(s.jobs, &managedJob{job: job})
}

// Start launches one goroutine per registered job. Loops exit when ctx is
// canceled; call Wait to block until they have drained.
func (s *Scheduler) Start(ctx context.Context) {
	for _, mj := range s.jobs {
		mj := mj
		s.wg.Go(func() {
			s.runLoop(ctx, mj)
		})
	}
}

func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, mj *managedJob) {
	if mj.job.RunOnStart {
		s.runOnce(ctx, mj)
	}

	ticker := time.NewTicker(mj.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, mj)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, mj *managedJob) {
	if ctx.Err() != nil {
		return
	}

	if !mj.mu.TryLock() {
		s.logger.WarnContext(ctx, "previous job run still in progress, skipping tick", "job", mj.job.Name)
		return
	}
	defer mj.mu.Unlock()

	if s.pinger != nil {
		if err := s.pinger.PingContext(ctx); err != nil {
			s.logger.WarnContext(ctx, "database unreachable, skipping job run", "job", mj.job.Name, "error", err)
			return
		}
	}

	started := time.Now()

	var runErr error
	recovered := panics.Try(func() {
		runErr = mj.job.Run(ctx)
	})
	if recovered != nil {
		s.logger.ErrorContext(ctx, "job run panicked", "job", mj.job.Name, "panic", recovered.AsError())
		return
	}
	if runErr != nil {
		s.logger.ErrorContext(ctx, "job run failed", "job", mj.job.Name, "duration_ms", time.Since(started).Milliseconds(), "error", runErr)
		return
	}

	s.logger.InfoContext(ctx, "job run completed", "job", mj.job.Name, "duration_ms", time.Since(started).Milliseconds())
}
