package config

import (
	"log"
	"sync"

	"github.com/bookhive/borrow-service/internal/server"
	"github.com/bookhive/borrow-service/internal/service"
	"github.com/bookhive/borrow-service/pkg/auth"
	"github.com/bookhive/borrow-service/pkg/kafka"
	"github.com/bookhive/borrow-service/pkg/logger"
	"github.com/bookhive/borrow-service/pkg/mailer"
	"github.com/bookhive/borrow-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   server.Config  `yaml:"server"`
	Database postgres.DB    `yaml:"db"`
	Auth     auth.Config    `yaml:"auth"`
	Kafka    kafka.Config   `yaml:"kafka"`
	Mail     mailer.Config  `yaml:"mail"`
	Service  service.Config `yaml:"service"`
	Log      logger.Log     `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
