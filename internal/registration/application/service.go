package application

import (
	"context"

	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/internal/registration/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

// RSVPService 免费活动报名应用服务
type RSVPService struct {
	repo    domain.Repository
	catalog catalogdomain.Repository
	metrics *metrics.Metrics
}

func NewRSVPService(repo domain.Repository, catalog catalogdomain.Repository, m *metrics.Metrics) *RSVPService {
	return &RSVPService{repo: repo, catalog: catalog, metrics: m}
}

// Register 登记一条免费活动报名；付费活动拒绝并指向支付流程
func (s *RSVPService) Register(ctx context.Context, eventID int64, name, email string, attendees int) (*domain.RSVP, error) {
	event, err := s.catalog.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Free() {
		return nil, domain.ErrPaidEvent
	}

	rsvp := &domain.RSVP{
		EventID:    event.ID,
		EventTitle: event.Title,
		Name:       name,
		Email:      email,
		Attendees:  attendees,
	}
	if err := rsvp.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rsvp); err != nil {
		logger.Error(ctx, "failed to save rsvp", "event_id", eventID, "error", err)
		return nil, err
	}

	s.metrics.RSVPsTotal.Inc()
	logger.Info(ctx, "rsvp registered", "event_id", eventID, "attendees", attendees)
	return rsvp, nil
}
