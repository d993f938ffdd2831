package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/artsfoundation/internal/newsletter/domain"
)

// SubscriptionRepository 进程内订阅仓储
type SubscriptionRepository struct {
	mu     sync.Mutex
	nextID uint
	byMail map[string]domain.Subscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{nextID: 1, byMail: make(map[string]domain.Subscription)}
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byMail[sub.Email]; ok {
		*sub = existing
		return nil
	}
	sub.ID = r.nextID
	r.nextID++
	r.byMail[sub.Email] = *sub
	return nil
}
