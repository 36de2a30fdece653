package risk

import (
	"custody-core/pkg/logger"
	"custody-core/pkg/wallet/types"

	"go.uber.org/zap"
)

// LogSink 把 critical 告警写入审计日志。
type LogSink struct{}

func (LogSink) OnBreach(alert types.RiskAlert) {
	logger.Error("风险告警触发审计",
		zap.String("severity", string(alert.Severity)),
		zap.String("description", alert.Description),
	)
}
