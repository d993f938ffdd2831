package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/artsfoundation/internal/newsletter/domain"
	"github.com/wyfcoding/artsfoundation/internal/newsletter/infrastructure/memory"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

func TestSubscribeNormalizesEmail(t *testing.T) {
	svc := NewNewsletterService(memory.NewSubscriptionRepository(), metrics.New("test"))

	sub, err := svc.Subscribe(context.Background(), "  Ada@Example.COM ")

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sub.Email)
}

func TestSubscribeIdempotent(t *testing.T) {
	svc := NewNewsletterService(memory.NewSubscriptionRepository(), metrics.New("test"))
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, "ada@example.com")
	require.NoError(t, err)
	second, err := svc.Subscribe(ctx, "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestSubscribeInvalidEmail(t *testing.T) {
	svc := NewNewsletterService(memory.NewSubscriptionRepository(), metrics.New("test"))

	_, err := svc.Subscribe(context.Background(), "not-an-email")

	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}
