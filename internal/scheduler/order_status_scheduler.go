package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/pedefood/pedefood-backend/internal/app/service"
	"github.com/pedefood/pedefood-backend/pkg/logger"
)

// OrderStatusScheduler advances in-flight orders through the delivery
// pipeline on a fixed interval.
type OrderStatusScheduler struct {
	cron         *cron.Cron
	orderService service.OrderService
	interval     string
}

// NewOrderStatusScheduler creates the scheduler. interval is a cron
// spec such as "@every 6s"; when empty a default of 6 seconds is used.
func NewOrderStatusScheduler(orderService service.OrderService, interval string) *OrderStatusScheduler {
	if interval == "" {
		interval = "@every 6s"
	}
	return &OrderStatusScheduler{
		cron:         cron.New(),
		orderService: orderService,
		interval:     interval,
	}
}

// Start registers the advance job and starts the cron loop.
func (s *OrderStatusScheduler) Start() error {
	_, err := s.cron.AddFunc(s.interval, func() {
		if err := s.orderService.AdvanceInFlightOrders(); err != nil {
			logger.Error("Failed to advance order statuses", err)
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for order status updates", err)
		return err
	}

	s.cron.Start()
	logger.Info("Order status scheduler started", map[string]interface{}{
		"interval": s.interval,
	})

	return nil
}

// Stop halts the cron loop. Jobs already running are allowed to finish.
func (s *OrderStatusScheduler) Stop() {
	logger.Info("Stopping order status scheduler...", nil)
	s.cron.Stop()
	logger.Info("Order status scheduler stopped", nil)
}
