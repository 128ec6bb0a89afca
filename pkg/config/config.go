package config

import "time"

// Relay definition relay_service YAML structure
type Relay struct {
	Port           string         `mapstructure:"port"`
	AllowOrigins   string         `mapstructure:"allow_origins"`
	GRPCHealthPort string         `mapstructure:"grpc_health_port"`
	Pprof          bool           `mapstructure:"pprof"`
	Debug          bool           `mapstructure:"debug"`
	Session        SessionConfig  `mapstructure:"session"`
	Dispatch       DispatchConfig `mapstructure:"dispatch"`
	Tap            TapConfig      `mapstructure:"tap"`
}

// SessionConfig definition per-connection settings
type SessionConfig struct {
	SendBuffer     int           `mapstructure:"send_buffer"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	DisplacePolicy string        `mapstructure:"displace_policy"`
}

// DispatchConfig definition dispatch loop settings
type DispatchConfig struct {
	QueueSize int `mapstructure:"queue_size"`
}

// TapConfig definition event tap sink
type TapConfig struct {
	Driver        string         `mapstructure:"driver"`
	Buffer        int            `mapstructure:"buffer"`
	RetryCount    int            `mapstructure:"retry_count"`
	RetryInterval int            `mapstructure:"retry_interval"`
	Redis         RedisConfig    `mapstructure:"redis"`
	Kafka         KafkaConfig    `mapstructure:"kafka"`
	RabbitMQ      RabbitMQConfig `mapstructure:"rabbitmq"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	Addr       string   `mapstructure:"addr"`
	MasterName string   `mapstructure:"master_name"`
	Sentinels  []string `mapstructure:"sentinels"`
	RedisDB    int      `mapstructure:"redis_db"`
	Channel    string   `mapstructure:"channel"`
}

// KafkaConfig definition kafka setting
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// RabbitMQConfig definition rabbitmq setting
type RabbitMQConfig struct {
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

const (
	// DisplaceSilent duplicate join silently overwrites the old binding
	DisplaceSilent = "silent"
	// DisplaceNotify duplicate join tells the displaced connection
	DisplaceNotify = "notify"

	// TapNone no event tap
	TapNone = "none"
	// TapRedis publish tap records to a redis channel
	TapRedis = "redis"
	// TapKafka write tap records to a kafka topic
	TapKafka = "kafka"
	// TapRabbitMQ publish tap records to a rabbitmq exchange
	TapRabbitMQ = "rabbitmq"
)

// RelayDefaults default values for Relay, keyed the same way as the YAML
func RelayDefaults() map[string]interface{} {
	return map[string]interface{}{
		"port":                     "5000",
		"allow_origins":            "http://localhost:5173",
		"grpc_health_port":         "",
		"pprof":                    false,
		"debug":                    false,
		"session.send_buffer":      64,
		"session.ping_interval":    "30s",
		"session.read_limit":       64 * 1024,
		"session.displace_policy":  DisplaceSilent,
		"dispatch.queue_size":      256,
		"tap.driver":               TapNone,
		"tap.buffer":               1024,
		"tap.retry_count":          5,
		"tap.retry_interval":       2,
		"tap.redis.addr":           "",
		"tap.redis.master_name":    "",
		"tap.redis.sentinels":      []string{},
		"tap.redis.redis_db":       0,
		"tap.redis.channel":        "relay:events",
		"tap.kafka.brokers":        []string{},
		"tap.kafka.topic":          "relay-events",
		"tap.rabbitmq.url":         "",
		"tap.rabbitmq.exchange":    "relay.events",
		"tap.rabbitmq.routing_key": "relay",
	}
}
