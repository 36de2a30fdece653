package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	SimulationTotal  *prometheus.CounterVec
	TxSignedTotal    *prometheus.CounterVec
	BroadcastTotal   *prometheus.CounterVec
	RiskAlertTotal   *prometheus.CounterVec
	AuthFailureTotal prometheus.Counter
	SharesSplitTotal *prometheus.CounterVec
}

// Global Metrics Instance
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		SimulationTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_simulation_total",
			Help: "The total number of transaction simulations",
		}, []string{"result"}),
		TxSignedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_tx_signed_total",
			Help: "The total number of signed transactions",
		}, []string{"chain"}),
		BroadcastTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_broadcast_total",
			Help: "The total number of broadcast transactions",
		}, []string{"chain", "status"}),
		RiskAlertTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_risk_alert_total",
			Help: "Risk alerts produced by the analyzer",
		}, []string{"severity"}),
		AuthFailureTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallet_auth_failure_total",
			Help: "Authorization gate denials",
		}),
		SharesSplitTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_recovery_split_total",
			Help: "Secret split operations by strategy",
		}, []string{"strategy"}),
	}
}
