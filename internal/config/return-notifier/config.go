package return_notifier_config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NordCoder/tsreturn/internal/obs"
	"github.com/NordCoder/tsreturn/internal/repository/kafka"
	pg "github.com/NordCoder/tsreturn/internal/repository/postgres"
	rds "github.com/NordCoder/tsreturn/internal/repository/redis"
)

type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func (c *Config) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{
		Level:  c.Log.Level,
		Pretty: c.Log.Pretty,
		App:    c.App.Name,
		Env:    c.App.Env,
		Ver:    c.App.Version,
	}
}

type OTEL struct {
	Enable       bool    `mapstructure:"enable"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

func (oc *OTEL) AsOTELConfig() *obs.OTELConfig {
	return &obs.OTELConfig{
		Enable:      oc.Enable,
		Endpoint:    oc.OTLPEndpoint,
		ServiceName: oc.ServiceName,
		SampleRatio: oc.SampleRatio,
	}
}

type Server struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	MetricsAddr     string        `mapstructure:"metrics_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	GracefulTimeout time.Duration `mapstructure:"graceful_timeout"`
}

type KafkaIn struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

func (k *KafkaIn) AsConsumerConfig() *kafka.ConsumerConfig {
	return &kafka.ConsumerConfig{
		Brokers: k.Brokers,
		GroupID: k.GroupID,
		Topic:   k.Topic,
	}
}

type KafkaOut struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type SMTP struct {
	Addr       string        `mapstructure:"addr"`
	From       string        `mapstructure:"from"`
	User       string        `mapstructure:"user"`
	Password   string        `mapstructure:"password"`
	UseTLS     bool          `mapstructure:"use_tls"`
	Timeout    time.Duration `mapstructure:"timeout"`
	SubjPrefix string        `mapstructure:"subj_prefix"`
}

type Mail struct {
	ResellerFrom string `mapstructure:"reseller_from"`
}

// Texts holds message templates. Resellers is keyed by reseller id.
type Texts struct {
	Default   map[string]string            `mapstructure:"default"`
	Resellers map[string]map[string]string `mapstructure:"resellers"`
}

func (t *Texts) ResellerOverrides() (map[int64]map[string]string, error) {
	out := make(map[int64]map[string]string, len(t.Resellers))
	for k, v := range t.Resellers {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("texts.resellers: bad reseller id %q", k)
		}
		out[id] = v
	}
	return out, nil
}

type Config struct {
	App    App        `mapstructure:"app"`
	Log    Log        `mapstructure:"log"`
	OTEL   OTEL       `mapstructure:"otel"`
	Server Server     `mapstructure:"server"`
	DB     pg.Config  `mapstructure:"db"`
	Redis  rds.Config `mapstructure:"redis"`
	In     KafkaIn    `mapstructure:"kafka_in"`
	Out    KafkaOut   `mapstructure:"kafka_out"`
	SMS    KafkaOut   `mapstructure:"kafka_sms"`
	SMTP   SMTP       `mapstructure:"smtp"`
	Mail   Mail       `mapstructure:"mail"`
	Texts  Texts      `mapstructure:"texts"`
}

// ResellerEmailFrom is the sender address for every outgoing email.
func (c *Config) ResellerEmailFrom() string { return c.Mail.ResellerFrom }

type ErrConfig string

func (e ErrConfig) Error() string { return string(e) }
