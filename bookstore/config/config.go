package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/Astemirdum/bookstore-service/pkg/kafka"
	"github.com/Astemirdum/bookstore-service/pkg/logger"
	"github.com/Astemirdum/bookstore-service/pkg/postgres"
	"github.com/Astemirdum/bookstore-service/pkg/sqlite"
	"github.com/Astemirdum/bookstore-service/pkg/stable/s3backup"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"BOOKSTORE_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"BOOKSTORE_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE" default:"10s"`
}

// Storage selects the page medium behind the region manager.
type Storage struct {
	Driver   string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLite   sqlite.DB
	Postgres postgres.DB `json:"-"`
}

type Config struct {
	Server  HTTPServer `yaml:"server"`
	Storage Storage
	Kafka   kafka.Config
	Backup  s3backup.Config
	Log     logger.Log `yaml:"log"`

	quiet bool
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		if err := config.Storage.validate(); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		if !cfg.quiet {
			printConfig(cfg)
		}
	})

	return cfg
}

func (s Storage) validate() error {
	switch s.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
		return nil
	}
	return errors.Errorf("unknown STORAGE_DRIVER %q", s.Driver)
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
