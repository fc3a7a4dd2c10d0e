package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wallet-ledger/internal/service/mq"
	"wallet-ledger/internal/store"
	"wallet-ledger/pkg/logger"
	"wallet-ledger/pkg/monitor"
)

// RelayService 负责把本地消息表 (Outbox) 的消息搬运到 MQ。
// At-least-once: 只有发送成功才标记 SENT; 标记失败下次会重发，
// 消费侧 (EmitterService) 必须幂等。
type RelayService struct {
	store    store.Store
	producer mq.Producer
	interval time.Duration
}

func NewRelayService(st store.Store, producer mq.Producer, interval time.Duration) *RelayService {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &RelayService{
		store:    st,
		producer: producer,
		interval: interval,
	}
}

func (s *RelayService) Start(ctx context.Context) {
	logger.Info("启动消息中继服务", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("消息中继服务停止")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *RelayService) processPendingMessages(ctx context.Context) {
	// 每次取 50 条，避免大批积压时内存爆炸
	messages, err := s.store.PendingOutbox(ctx, 50)
	if err != nil {
		logger.Error("查询 Outbox 消息失败", zap.Error(err))
		return
	}

	monitor.OutboxPending.Set(float64(len(messages)))
	if len(messages) == 0 {
		return
	}

	for _, msg := range messages {
		if err := s.producer.Publish(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			// 发送失败留在 PENDING，下个 tick 重试; 不影响任何已提交的账
			logger.Error("Outbox 消息投递失败", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}

		if err := s.store.MarkOutboxSent(ctx, msg.ID); err != nil {
			logger.Error("Outbox 状态更新失败", zap.Uint64("id", msg.ID), zap.Error(err))
		}
	}
}
