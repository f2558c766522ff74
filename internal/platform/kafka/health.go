package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

// HealthChecker reports whether the cluster answers metadata requests.
type HealthChecker struct {
	admin   *kadm.Client
	timeout time.Duration
}

// NewHealthChecker reuses client for admin requests; it does not own it.
func NewHealthChecker(client *kgo.Client) *HealthChecker {
	return &HealthChecker{admin: kadm.NewClient(client), timeout: 5 * time.Second}
}

// Check succeeds when at least one broker is listed.
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	brokers, err := h.admin.ListBrokers(ctx)
	if err != nil {
		return fmt.Errorf("list kafka brokers: %w", err)
	}
	if len(brokers) == 0 {
		return fmt.Errorf("no kafka brokers reachable")
	}
	return nil
}

func (h *HealthChecker) Name() string {
	return "kafka"
}
