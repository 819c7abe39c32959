package simulator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// DefaultInterval период генерации синтетических оповещений
const DefaultInterval = 30 * time.Second

var ErrAlreadyRunning = errors.New("simulator already running")

// TickFunc вызывается на каждом срабатывании таймера
type TickFunc func(ctx context.Context)

// Simulator периодически вызывает TickFunc, пока не будет остановлен.
// Один экземпляр принадлежит одной сессии.
type Simulator struct {
	clock    clockwork.Clock
	interval time.Duration
	tick     TickFunc
	logger   *logrus.Entry

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(clock clockwork.Clock, interval time.Duration, tick TickFunc, logger *logrus.Logger) *Simulator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		clock:    clock,
		interval: interval,
		tick:     tick,
		logger:   logger.WithField("component", "simulator"),
	}
}

// Start запускает цикл таймера. Повторный запуск без Stop возвращает ErrAlreadyRunning.
func (s *Simulator) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	ticker := s.clock.NewTicker(s.interval)
	go s.loop(runCtx, ticker, s.done)

	s.logger.WithField("interval", s.interval).Info("Alert simulator started")
	return nil
}

func (s *Simulator) loop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			// Stop мог быть вызван одновременно с тиком
			if ctx.Err() != nil {
				return
			}
			s.tick(ctx)
		}
	}
}

// Stop останавливает таймер и дожидается завершения цикла.
// После возврата из Stop тики больше не выполняются. Повторный вызов безопасен.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Alert simulator stopped")
}

// Running сообщает, запущен ли цикл таймера
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
