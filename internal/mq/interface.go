package mq

import (
	"context"

	"custody-core/pkg/config"
	"custody-core/pkg/database"
)

// Message 一条交易生命周期事件 (广播成功/失败等)
type Message struct {
	ID      string // 消息ID (例如 Redis Stream ID)
	Topic   string // 主题 (例如 "tx_lifecycle")
	Key     string // 分区键 (账户地址)，保证同一账户的事件有序
	Payload []byte // 消息体 (JSON)
}

// Producer 事件生产者接口。编排层在交易广播后发布事件，
// 下游的对账/通知服务消费。
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}

// NewProducer 按配置选择事件总线后端。type 为空表示不发事件。
func NewProducer(cfg config.MQConfig) (Producer, error) {
	switch cfg.Type {
	case "kafka":
		return NewKafkaProducer(cfg.Brokers, cfg.Topic), nil
	case "redis":
		client, err := database.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return NewRedisProducer(client), nil
	default:
		return nil, nil
	}
}
