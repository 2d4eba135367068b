package reconciler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samlms/lms/internal/config"
	"github.com/samlms/lms/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=reconciler.go -destination=reconciler_mock.go -package=reconciler

var inFlight sync.Map

// Payments поверхность платёжного сервиса, нужная фоновой сверке.
type Payments interface {
	PendingPayments(ctx context.Context, age time.Duration, limit uint32) ([]domain.Payment, error)
	Reconcile(ctx context.Context, reference string) error
}

// Service периодически закрывает зависшие pending-платежи: webhook мог
// потеряться, а клиент мог так и не вызвать verify.
type Service struct {
	payments      Payments
	limit         uint32
	minAge        time.Duration
	workerPool    WorkerPoolI
	sweepInterval time.Duration
}

func New(cfg *config.Config, payments Payments) *Service {
	return &Service{
		payments:      payments,
		limit:         1000,
		minAge:        cfg.ReconcileMinAge,
		workerPool:    NewWorkerPool(10),
		sweepInterval: cfg.ReconcileInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Reconciler started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	payments, err := s.payments.PendingPayments(ctx, s.minAge, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch payments for reconciliation", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if _, loaded := inFlight.LoadOrStore(payment.Reference, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer inFlight.Delete(payment.Reference)
				return s.payments.Reconcile(ctx, payment.Reference)
			})
			if err != nil {
				inFlight.Delete(payment.Reference)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error reconciling payments", zap.Error(err))
	}
}
