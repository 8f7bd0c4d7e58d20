package status

import (
	"context"
	"errors"
	"sync"

	"zhi-theme/core/bootstrap"
	"zhi-theme/core/database"

	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned when no history database is configured.
var ErrHistoryDisabled = errors.New("bootstrap history is disabled")

// Runner performs a bootstrap pass.
type Runner interface {
	Run(ctx context.Context) (*bootstrap.Result, error)
}

// HistoryReader lists recorded bootstrap runs.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]database.BootstrapRun, error)
}

// Service keeps the latest bootstrap result.
type Service struct {
	runner  Runner
	history HistoryReader
	logger  *zap.Logger

	mu   sync.RWMutex
	last *bootstrap.Result

	// runMu keeps passes sequential.
	runMu sync.Mutex
}

// NewService creates a new status service. history may be nil.
func NewService(runner Runner, history HistoryReader, logger *zap.Logger) *Service {
	return &Service{
		runner:  runner,
		history: history,
		logger:  logger,
	}
}

// Last returns the latest bootstrap result, or nil before the first pass.
func (s *Service) Last() *bootstrap.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// SetLast stores a result produced outside the service.
func (s *Service) SetLast(res *bootstrap.Result) {
	s.mu.Lock()
	s.last = res
	s.mu.Unlock()
}

// Rebootstrap runs a new pass and stores its result.
func (s *Service) Rebootstrap(ctx context.Context) (*bootstrap.Result, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	res, err := s.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.SetLast(res)
	return res, nil
}

// Recent returns recorded runs, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]database.BootstrapRun, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}
