package mq

import "context"

// Message MQ 消息的统一抽象
type Message struct {
	ID      string
	Topic   string
	Key     string
	Payload []byte
}

// Producer 消息生产者接口 (Kafka / Redis Streams 两种实现)
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}

// Consumer 消息消费者接口
// handler 返回错误时不提交位点，消息会被重新投递，handler 必须幂等。
type Consumer interface {
	Subscribe(ctx context.Context, topic string, handler func(msg *Message) error) error
	Close() error
}
