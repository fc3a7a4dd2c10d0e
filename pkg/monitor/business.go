package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ResolutionsTotal 记录确认/驳回结果分布。
	// decision: confirm / reject
	// outcome:  confirmed / rejected / already_resolved / missing_amount / not_found / store_error
	ResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_resolutions_total",
			Help: "Deposit resolution attempts by decision and outcome.",
		},
		[]string{"decision", "outcome"},
	)

	// CreditedTotal 记录成功入账的 USD 金额 (按币种)
	CreditedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_credited_usd_total",
			Help: "Total USD amount credited by coin.",
		},
		[]string{"coin"},
	)

	// OutboxPending 当前待投递的 Outbox 消息数
	OutboxPending = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledger_outbox_pending",
			Help: "Number of outbox messages waiting to be relayed.",
		},
	)
)

// InitBusinessMetrics 注册业务指标
func InitBusinessMetrics() {
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(CreditedTotal)
	prometheus.MustRegister(OutboxPending)
}
