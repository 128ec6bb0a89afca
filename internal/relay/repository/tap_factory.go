package repository

import (
	"errors"
	"fmt"
	"time"

	"presence_relay_service/pkg/config"
	"presence_relay_service/pkg/database"
	errprocess "presence_relay_service/pkg/err"

	"github.com/go-redis/redis/v8"
)

// ErrUnknownTapDriver tap.driver is not one of none/redis/kafka/rabbitmq
var ErrUnknownTapDriver = errors.New("unknown tap driver")

// BuildEventTap connect the sink named by cfg.Driver
func BuildEventTap(cfg config.TapConfig) (EventTap, error) {
	switch cfg.Driver {
	case "", config.TapNone:
		return NopTap{}, nil

	case config.TapRedis:
		client, err := connectRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisTap(client, cfg.Redis.Channel), nil

	case config.TapKafka:
		writer, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
			Brokers:       cfg.Kafka.Brokers,
			Topic:         cfg.Kafka.Topic,
			RetryCount:    cfg.RetryCount,
			RetryInterval: time.Duration(cfg.RetryInterval),
		})
		if err != nil {
			return nil, err
		}
		return NewKafkaTap(writer), nil

	case config.TapRabbitMQ:
		conn, err := database.ConnectRabbitMQWithRetry(database.Connection{
			ConnectStr:    cfg.RabbitMQ.URL,
			RetryCount:    cfg.RetryCount,
			RetryInterval: time.Duration(cfg.RetryInterval),
		})
		if err != nil {
			return nil, err
		}
		ch, err := database.GetRabbitMQChannelWithRetry(conn, cfg.RetryCount, time.Duration(cfg.RetryInterval))
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		repo := database.NewRabbitRepository(conn, ch)
		if err := repo.DeclareExchange(cfg.RabbitMQ.Exchange); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", cfg.RabbitMQ.Exchange, err)
		}
		return NewRabbitTap(repo, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey), nil

	default:
		return nil, errprocess.Wrap(ErrUnknownTapDriver, fmt.Sprintf("driver %q", cfg.Driver))
	}
}

func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr != "" {
		return database.NewRedisStandaloneClient(cfg.Addr, cfg.RedisDB)
	}

	masterName, sentinels := cfg.MasterName, cfg.Sentinels
	if len(sentinels) == 0 {
		// 沒設定時從 .env 的 REDIS_SENTINEL*_IP 取得
		envMaster, envSentinels := config.GetRedisSetting()
		sentinels = envSentinels
		if masterName == "" {
			masterName = envMaster
		}
	}
	return database.NewRedisClient(masterName, sentinels, cfg.RedisDB)
}
