package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/sheet"
)

type Config struct {
	FlagAddress      string        `env:"SERVER_ADDRESS"`
	GRPCAddress      string        `env:"GRPC_ADDRESS"`
	FlagBaseAddress  string        `env:"BASE_URL"`
	SheetURL         string        `env:"SHEET_CSV_URL"`
	GallerySourceURL string        `env:"GALLERY_SOURCE_URL"`
	FetchTimeout     time.Duration `env:"SHEET_FETCH_TIMEOUT"`
	FlagFilePath     string        `env:"FILE_STORAGE_PATH"`
	ClicksFilePath   string        `env:"CLICKS_FILE_PATH"`
	DataBaseDSN      string        `env:"DATABASE_DSN"`
	SQLitePath       string        `env:"SQLITE_PATH"`
	AdminPassword    string        `env:"ADMIN_PASSWORD"`
	SessionSecret    string        `env:"SESSION_SECRET"`
	TrustedSubnet    string        `env:"TRUSTED_SUBNET"`
	EnableHTTPS      bool          `env:"ENABLE_HTTPS"`
	TLSHost          string        `env:"TLS_HOST"`
	LogLevel         string        `env:"LOG_LEVEL"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// NewConfig читает .env, флаги командной строки и переменные окружения. Окружение важнее флагов
func NewConfig() *Config {
	//.env может и не быть
	_ = godotenv.Load()
	c, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return c
}

// Parse разбор аргументов и окружения без глобального flag.CommandLine
func Parse(args []string) (*Config, error) {
	currentDir, _ := os.Getwd()
	c := &Config{
		FlagAddress:    ":8080",
		GRPCAddress:    ":3200",
		SheetURL:       sheet.DefaultURL,
		FetchTimeout:   15 * time.Second,
		FlagFilePath:   fmt.Sprint(currentDir, "/tmp/websites.json"),
		ClicksFilePath: fmt.Sprint(currentDir, "/tmp/bodacious-clicks.json"),
		AdminPassword:  admin.DefaultPassword,
		LogLevel:       "info",
	}
	fs := flag.NewFlagSet("bodacious", flag.ContinueOnError)
	// указываем ссылку на переменную, имя флага, значение по умолчанию и описание
	fs.StringVar(&c.FlagAddress, "a", c.FlagAddress, "set server IP address")
	fs.StringVar(&c.GRPCAddress, "g", c.GRPCAddress, "set gRPC server address, empty to disable")
	fs.Func("b", "public base URL for gallery links, empty for relative links", func(flagValue string) error {
		hp := strings.Split(flagValue, ":")
		if len(hp) < 2 {
			return errors.New("need address in a form host:port")
		}
		if hp[0] == "http" || hp[0] == "https" {
			c.FlagBaseAddress = flagValue
		} else {
			c.FlagBaseAddress = fmt.Sprint("http://", flagValue)
		}
		return nil
	})
	fs.StringVar(&c.SheetURL, "s", c.SheetURL, "published spreadsheet CSV export URL")
	fs.StringVar(&c.GallerySourceURL, "source", c.GallerySourceURL, "conversion endpoint URL for the gallery, empty for in-process")
	fs.DurationVar(&c.FetchTimeout, "timeout", c.FetchTimeout, "spreadsheet fetch timeout")
	fs.StringVar(&c.FlagFilePath, "f", c.FlagFilePath, "set curated websites file path")
	fs.StringVar(&c.ClicksFilePath, "c", c.ClicksFilePath, "set click counts file path")
	fs.StringVar(&c.DataBaseDSN, "d", c.DataBaseDSN, "Database connection string")
	fs.StringVar(&c.SQLitePath, "l", c.SQLitePath, "SQLite database path")
	fs.StringVar(&c.AdminPassword, "p", c.AdminPassword, "admin password")
	fs.StringVar(&c.TrustedSubnet, "t", c.TrustedSubnet, "trusted subnet CIDR for stats")
	fs.BoolVar(&c.EnableHTTPS, "https", c.EnableHTTPS, "serve HTTPS with autocert")
	fs.StringVar(&c.TLSHost, "tls-host", c.TLSHost, "domain for the autocert certificate")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if c.EnableHTTPS && c.TLSHost == "" {
		return nil, errors.New("HTTPS needs a certificate domain: set -tls-host or TLS_HOST")
	}
	return c, nil
}
