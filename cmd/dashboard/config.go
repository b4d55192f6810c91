package main

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/dashkit/pkg/httpserver"
	"github.com/dmitrymomot/dashkit/pkg/notifications"
)

// Config is the process configuration, read from the environment.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"dashboard"`
	LogLevel    string `env:"LOG_LEVEL"`

	HTTP httpserver.Config

	IDStrategy       string `env:"NOTIFICATION_ID_STRATEGY" envDefault:"sequence"`
	SubscriberBuffer int    `env:"NOTIFICATION_SUBSCRIBER_BUFFER" envDefault:"16"`
}

func (c Config) idGenerator() (notifications.IDGenerator, error) {
	switch strings.ToLower(c.IDStrategy) {
	case "", "sequence":
		return notifications.NewSequenceGenerator(), nil
	case "uuid":
		return notifications.UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown notification id strategy %q", c.IDStrategy)
	}
}
