// Package metrics 提供 Prometheus helper，包含 HTTP 与支付业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 支付意图创建计数，按 purpose 区分
	IntentsCreatedTotal *prometheus.CounterVec
	// 支付确认结果计数，按 outcome 区分
	ConfirmationsTotal *prometheus.CounterVec
	// 收款总额（最小货币单位）
	AmountCollectedCents prometheus.Counter

	// RSVP 计数
	RSVPsTotal prometheus.Counter
	// 订阅计数
	NewsletterSubscriptionsTotal prometheus.Counter

	registry *prometheus.Registry
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		IntentsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "payment_intents_created_total",
			Help:      "Payment intents created, by purpose",
		}, []string{"purpose"}),
		ConfirmationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "payment_confirmations_total",
			Help:      "Payment confirmation outcomes",
		}, []string{"outcome"}),
		AmountCollectedCents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "amount_collected_cents_total",
			Help:      "Total amount collected in minor currency units",
		}),
		RSVPsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "event_rsvps_total",
			Help:      "Free event RSVPs accepted",
		}),
		NewsletterSubscriptionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "foundation",
			Subsystem: serviceName,
			Name:      "newsletter_subscriptions_total",
			Help:      "Newsletter subscriptions accepted",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.IntentsCreatedTotal,
		m.ConfirmationsTotal,
		m.AmountCollectedCents,
		m.RSVPsTotal,
		m.NewsletterSubscriptionsTotal,
	)
	return m
}

// ExposeHTTP 在后台 goroutine 启动独立的指标 HTTP 服务，立即返回
func (m *Metrics) ExposeHTTP(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	addr := fmt.Sprintf(":%d", port)
	go func() {
		logger.Info(context.Background(), "metrics server starting", "addr", addr, "path", path)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(context.Background(), "metrics server exited", "error", err)
		}
	}()
}
