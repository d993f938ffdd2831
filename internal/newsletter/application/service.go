package application

import (
	"context"

	"github.com/wyfcoding/artsfoundation/internal/newsletter/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

// NewsletterService 邮件订阅应用服务
type NewsletterService struct {
	repo    domain.Repository
	metrics *metrics.Metrics
}

func NewNewsletterService(repo domain.Repository, m *metrics.Metrics) *NewsletterService {
	return &NewsletterService{repo: repo, metrics: m}
}

// Subscribe 登记订阅，重复订阅同一邮箱幂等
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*domain.Subscription, error) {
	sub, err := domain.NewSubscription(email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		logger.Error(ctx, "failed to save subscription", "error", err)
		return nil, err
	}
	s.metrics.NewsletterSubscriptionsTotal.Inc()
	return sub, nil
}
