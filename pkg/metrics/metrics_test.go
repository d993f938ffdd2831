package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestExposeHTTPReturnsImmediately(t *testing.T) {
	m := New("test")

	done := make(chan struct{})
	go func() {
		m.ExposeHTTP(19099, "/metrics")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ExposeHTTP blocked the caller; wiring after it would never run")
	}
}

func TestPaymentCounters(t *testing.T) {
	m := New("test")

	m.IntentsCreatedTotal.WithLabelValues("donation").Inc()
	m.ConfirmationsTotal.WithLabelValues("succeeded").Inc()
	m.AmountCollectedCents.Add(5000)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.IntentsCreatedTotal.WithLabelValues("donation")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ConfirmationsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, float64(5000), testutil.ToFloat64(m.AmountCollectedCents))
}
