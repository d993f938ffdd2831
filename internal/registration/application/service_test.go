package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	catalogmemory "github.com/wyfcoding/artsfoundation/internal/catalog/infrastructure/memory"
	"github.com/wyfcoding/artsfoundation/internal/registration/domain"
	"github.com/wyfcoding/artsfoundation/internal/registration/infrastructure/memory"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

func newTestService() (*RSVPService, *memory.RSVPRepository) {
	repo := memory.NewRSVPRepository()
	return NewRSVPService(repo, catalogmemory.NewCatalogRepository(), metrics.New("test")), repo
}

func TestRegisterFreeEvent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	// Summer Art Fair 免费
	rsvp, err := svc.Register(ctx, 1, "Ada Lovelace", "ada@example.com", 2)

	require.NoError(t, err)
	assert.Equal(t, "Summer Art Fair", rsvp.EventTitle)
	assert.Equal(t, 2, rsvp.Attendees)

	saved, err := repo.ListByEvent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestRegisterPaidEventRejected(t *testing.T) {
	svc, _ := newTestService()

	// Watercolor Workshop $25，必须走支付流程
	_, err := svc.Register(context.Background(), 2, "Ada Lovelace", "ada@example.com", 1)

	assert.ErrorIs(t, err, domain.ErrPaidEvent)
}

func TestRegisterUnknownEvent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), 999, "Ada Lovelace", "ada@example.com", 1)

	assert.ErrorIs(t, err, catalogdomain.ErrEventNotFound)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, 1, "Ada Lovelace", "ada@example.com", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRSVP)

	_, err = svc.Register(ctx, 1, "Ada Lovelace", "not-an-email", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidRSVP)

	_, err = svc.Register(ctx, 1, "", "ada@example.com", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidRSVP)
}
