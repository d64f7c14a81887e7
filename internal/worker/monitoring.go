package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/xid"

	"deal_radar/internal/domain"
	"deal_radar/pkg/contextx"
	"deal_radar/pkg/errcodes"
	"deal_radar/pkg/logx"
)

type Loop string

const (
	LoopDealScan Loop = "deal_scan"
	LoopBidCheck Loop = "bid_check"
)

const (
	defaultDealScanInterval = 3 * time.Minute
	defaultBidCheckInterval = 30 * time.Second
	defaultCycleTimeout     = 2 * time.Minute
)

var (
	ErrCycleInProgress = domain.NewError(errcodes.CycleInProgress, "cycle is already in progress") //nolint:gochecknoglobals
	ErrUnknownLoop     = domain.NewError(errcodes.ValidationError, "unknown loop")                 //nolint:gochecknoglobals
	ErrAlreadyRunning  = errors.New("monitoring is already running")                               //nolint:gochecknoglobals
)

func ParseLoop(s string) (Loop, error) {
	switch Loop(s) {
	case LoopDealScan, LoopBidCheck:
		return Loop(s), nil
	default:
		return "", ErrUnknownLoop
	}
}

// LoopStatus: снимок состояния цикла для /status и админского API.
type LoopStatus struct {
	Loop         Loop          `json:"loop"`
	Interval     time.Duration `json:"interval"`
	InProgress   bool          `json:"in_progress"`
	LastStarted  time.Time     `json:"last_started,omitempty"`
	LastFinished time.Time     `json:"last_finished,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
}

type loopRunner struct {
	name     Loop
	cycle    Cycle
	interval time.Duration

	// running не даёт циклу одного вида пересекаться с самим собой
	running sync.Mutex

	stateMu sync.Mutex
	state   LoopStatus
}

// Monitoring владеет двумя независимыми циклами опроса.
type Monitoring struct {
	dealScan *loopRunner
	bidCheck *loopRunner

	locker       Locker
	cycleTimeout time.Duration
	metrics      *Metrics

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

type MonitoringOption func(*Monitoring)

func WithDealScanInterval(d time.Duration) MonitoringOption {
	return func(m *Monitoring) {
		if d > 0 {
			m.dealScan.interval = d
		}
	}
}

func WithBidCheckInterval(d time.Duration) MonitoringOption {
	return func(m *Monitoring) {
		if d > 0 {
			m.bidCheck.interval = d
		}
	}
}

func WithCycleTimeout(d time.Duration) MonitoringOption {
	return func(m *Monitoring) {
		if d > 0 {
			m.cycleTimeout = d
		}
	}
}

// WithLocker включает распределённую блокировку циклов между репликами.
func WithLocker(l Locker) MonitoringOption {
	return func(m *Monitoring) {
		m.locker = l
	}
}

func WithMonitoringMetrics(metrics *Metrics) MonitoringOption {
	return func(m *Monitoring) {
		m.metrics = metrics
	}
}

func NewMonitoring(dealScan, bidCheck Cycle, opts ...MonitoringOption) *Monitoring {
	m := &Monitoring{
		dealScan:     &loopRunner{name: LoopDealScan, cycle: dealScan, interval: defaultDealScanInterval},
		bidCheck:     &loopRunner{name: LoopBidCheck, cycle: bidCheck, interval: defaultBidCheckInterval},
		cycleTimeout: defaultCycleTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.dealScan.state = LoopStatus{Loop: LoopDealScan, Interval: m.dealScan.interval}
	m.bidCheck.state = LoopStatus{Loop: LoopBidCheck, Interval: m.bidCheck.interval}

	return m
}

// StartMonitoring создаёт и сразу запускает оба цикла.
func StartMonitoring(ctx context.Context, dealScan, bidCheck Cycle, opts ...MonitoringOption) (*Monitoring, error) {
	m := NewMonitoring(dealScan, bidCheck, opts...)

	if err := m.Start(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Monitoring) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isRunning {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	m.isRunning = true

	for _, l := range m.loops() {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.runLoop(runCtx, l)
		}()
	}

	logger(ctx).Info("monitoring started",
		slog.Duration("deal-scan-interval", m.dealScan.interval),
		slog.Duration("bid-check-interval", m.bidCheck.interval),
	)

	return nil
}

// MarkScheduled отмечает мониторинг запущенным, когда циклы по расписанию запускает asynq.
// Собственные горутины при этом не стартуют, Stop только снимает отметку.
func (m *Monitoring) MarkScheduled(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isRunning {
		return ErrAlreadyRunning
	}

	m.cancelFunc = func() {}
	m.isRunning = true

	logger(ctx).Info("monitoring scheduled by asynq")

	return nil
}

// Stop отменяет контекст и ждёт завершения текущих циклов.
func (m *Monitoring) Stop() {
	m.mu.Lock()

	if !m.isRunning {
		m.mu.Unlock()
		return
	}

	m.cancelFunc()
	m.cancelFunc = nil
	m.isRunning = false
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Monitoring) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning
}

// RunNow запускает цикл вне расписания и ждёт его окончания.
// Если цикл этого вида уже идёт, возвращает ErrCycleInProgress.
func (m *Monitoring) RunNow(ctx context.Context, loop Loop) error {
	l, err := m.loop(loop)
	if err != nil {
		return err
	}

	return m.runCycle(ctx, l)
}

func (m *Monitoring) Status() []LoopStatus {
	loops := m.loops()
	result := make([]LoopStatus, 0, len(loops))

	for _, l := range loops {
		l.stateMu.Lock()
		result = append(result, l.state)
		l.stateMu.Unlock()
	}

	return result
}

func (m *Monitoring) loops() []*loopRunner {
	return []*loopRunner{m.dealScan, m.bidCheck}
}

func (m *Monitoring) loop(name Loop) (*loopRunner, error) {
	switch name {
	case LoopDealScan:
		return m.dealScan, nil
	case LoopBidCheck:
		return m.bidCheck, nil
	default:
		return nil, ErrUnknownLoop
	}
}

// runLoop делает первый проход сразу, дальше по тикеру. Тики во время цикла пропускаются.
func (m *Monitoring) runLoop(ctx context.Context, l *loopRunner) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() == nil {
			_ = m.runCycle(ctx, l)
		}

		select {
		case <-ctx.Done():
			logger(ctx).Info("monitoring loop stopped", slog.String(logx.FieldLoop, string(l.name)))
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitoring) runCycle(ctx context.Context, l *loopRunner) (err error) {
	if !l.running.TryLock() {
		logger(ctx).Debug("cycle skipped, previous one still running", slog.String(logx.FieldLoop, string(l.name)))
		return ErrCycleInProgress
	}
	defer l.running.Unlock()

	ctx, cancel := context.WithTimeout(ctx, m.cycleTimeout)
	defer cancel()

	log := logger(ctx).With(
		slog.String(logx.FieldLoop, string(l.name)),
		slog.String(logx.FieldCycleID, xid.New().String()),
	)
	ctx = contextx.WithLogger(ctx, log)

	if m.locker != nil {
		unlock, err := m.locker.Acquire(ctx, "cycle:"+string(l.name), m.cycleTimeout)
		if err != nil {
			if domain.HasCode(err, errcodes.CycleInProgress) {
				log.Debug("cycle skipped, another instance holds the lock")
				return ErrCycleInProgress
			}
			log.Error("failed to acquire cycle lock", logx.Error(err))
			return domain.WrapError(err, errcodes.CycleFailed, "acquire cycle lock")
		}
		defer unlock()
	}

	start := time.Now()
	l.started(start)

	defer func() {
		if p := recover(); p != nil {
			err = domain.NewError(errcodes.CycleFailed, fmt.Sprintf("panic: %v", p))
			log.Error("cycle panicked", logx.Error(err), slog.String(logx.FieldStack, string(debug.Stack())))
		}

		elapsed := time.Since(start)
		l.finished(time.Now(), err)

		result := "ok"
		if err != nil {
			result = "failed"
		}
		m.metrics.observeCycle(l.name, result, elapsed)

		if err != nil && !domain.IsAppError(err) {
			err = domain.WrapError(err, errcodes.CycleFailed, "cycle failed")
		}
	}()

	if err = l.cycle.RunCycle(ctx); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = domain.WrapError(err, errcodes.TimeoutExceeded, fmt.Sprintf("cycle exceeded %s", m.cycleTimeout))
		}
		log.Error("cycle failed", logx.Error(err))
		return err
	}

	log.Debug("cycle completed", slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()))

	return nil
}

func (l *loopRunner) started(at time.Time) {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	l.state.InProgress = true
	l.state.LastStarted = at
}

func (l *loopRunner) finished(at time.Time, err error) {
	l.stateMu.Lock()
	defer l.stateMu.Unlock()

	l.state.InProgress = false
	l.state.LastFinished = at
	l.state.LastError = ""
	if err != nil {
		l.state.LastError = err.Error()
	}
}
