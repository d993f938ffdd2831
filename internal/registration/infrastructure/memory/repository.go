package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/artsfoundation/internal/registration/domain"
)

// RSVPRepository 进程内 RSVP 仓储，无数据库部署与测试使用
type RSVPRepository struct {
	mu     sync.Mutex
	nextID uint
	rsvps  []domain.RSVP
}

func NewRSVPRepository() *RSVPRepository {
	return &RSVPRepository{nextID: 1}
}

func (r *RSVPRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rsvp.ID = r.nextID
	r.nextID++
	r.rsvps = append(r.rsvps, *rsvp)
	return nil
}

func (r *RSVPRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.RSVP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RSVP
	for _, rsvp := range r.rsvps {
		if rsvp.EventID == eventID {
			out = append(out, rsvp)
		}
	}
	return out, nil
}
