package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Gateway  *Gateway
	Notify   *Notify
	AMQP     *AMQP
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

// Gateway configures the simulated payment gateway: the maximum chargeable
// amount and the artificial call latency.
type Gateway struct {
	MaxAmount string `env:"GATEWAY_MAX_AMOUNT"`
	LatencyMS int    `env:"GATEWAY_LATENCY_MS"`
}

// Notify holds the per-subscriber live-feed buffer size.
type Notify struct {
	Buffer int `env:"NOTIFY_BUFFER"`
}

// AMQP is optional; an empty URL disables event publishing.
type AMQP struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var gateway Gateway
	var notify Notify
	var amqp AMQP
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&gateway.MaxAmount, "g", "10000", "Payment gateway amount ceiling")
	flag.IntVar(&gateway.LatencyMS, "gl", 200, "Payment gateway latency, ms")
	flag.IntVar(&notify.Buffer, "nb", 16, "Notification subscriber buffer")
	flag.StringVar(&amqp.URL, "q", "", "AMQP broker URL (empty disables)")
	flag.StringVar(&amqp.Exchange, "qe", "freshmart.events", "AMQP exchange")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&gateway)
	if err != nil {
		return nil, fmt.Errorf("error parsing gateway config: %w", err)
	}
	err = env.Parse(&notify)
	if err != nil {
		return nil, fmt.Errorf("error parsing notify config: %w", err)
	}
	err = env.Parse(&amqp)
	if err != nil {
		return nil, fmt.Errorf("error parsing amqp config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Gateway:  &gateway,
		Notify:   &notify,
		AMQP:     &amqp,
		App:      &app,
	}

	return &config, nil
}
