// Package config loads and validates project settings for the verge CLI.
//
// Settings come from three layers, lowest precedence first: built-in
// defaults, a verge.yaml (or .toml/.json) file in the working directory,
// and VERGE_-prefixed environment variables. A .env file in the working
// directory is folded into the environment before resolution, so local
// credentials stay out of the config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalid marks configuration failures: a missing config file given
// explicitly, a malformed value, or a required setting left empty.
// Commands abort before touching the database when they see it.
//
// Check with errors.Is:
//
//	if errors.Is(err, config.ErrInvalid) {
//	    // bad settings, nothing was synced
//	}
var ErrInvalid = errors.New("invalid configuration")

// Known database engines.
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
)

// Settings is the root configuration structure. It is constructed once
// by Load and passed by parameter; nothing in verge reads configuration
// through shared globals.
type Settings struct {
	Database Database `mapstructure:"database" yaml:"database"`
	Apps     []string `mapstructure:"apps" yaml:"apps"`
	Server   Server   `mapstructure:"server" yaml:"server"`
	Log      Log      `mapstructure:"log" yaml:"log,omitempty"`
}

// Database selects the engine and connection parameters.
type Database struct {
	// Engine is one of postgres, sqlite, mysql. Default: postgres.
	Engine string `mapstructure:"engine" yaml:"engine"`

	// Host is the server address. Default: localhost. Unused for sqlite.
	Host string `mapstructure:"host" yaml:"host,omitempty"`

	// Port is the server port. Defaults: 5432 (postgres), 3306 (mysql).
	// Unused for sqlite.
	Port int `mapstructure:"port" yaml:"port,omitempty"`

	// Name is the database name, or the database file path for sqlite.
	// Required.
	Name string `mapstructure:"name" yaml:"name"`

	// User and Password are optional credentials.
	User     string `mapstructure:"user" yaml:"user,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
}

// Server configures the development server.
type Server struct {
	// Host to bind. Default: 127.0.0.1.
	Host string `mapstructure:"host" yaml:"host"`

	// Port to listen on. Default: 8080.
	Port int `mapstructure:"port" yaml:"port"`
}

// Log configures command logging. With File empty, logs go to stderr
// only; with File set, they also go to a size-rotated file.
type Log struct {
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups,omitempty"`
}

// Default returns the settings a fresh project starts from. Scaffolding
// marshals this into the generated verge.yaml.
func Default() *Settings {
	return &Settings{
		Database: Database{
			Engine: EnginePostgres,
			Host:   "localhost",
			Port:   5432,
		},
		Apps: []string{},
		Server: Server{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// Load reads settings from the given config file, or discovers
// verge.{yaml,toml,json} in the working directory when path is empty.
// Environment variables override file values: VERGE_DATABASE_PASSWORD
// overrides database.password. A missing discovered file is fine (env
// and defaults still apply); a missing explicit path is ErrInvalid.
func Load(path string) (*Settings, error) {
	// Fold .env into the process environment when present.
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("verge")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			// No config file is acceptable; env and defaults carry it.
		} else {
			return nil, fmt.Errorf("%w: read config: %v", ErrInvalid, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%w: parse config: %v", ErrInvalid, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.engine", EnginePostgres)
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
}

// Validate applies per-engine defaults and rejects malformed settings.
// Safe to call on hand-built Settings in tests.
func (s *Settings) Validate() error {
	d := &s.Database

	d.Engine = strings.TrimSpace(d.Engine)
	if d.Engine == "" {
		d.Engine = EnginePostgres
	}
	switch d.Engine {
	case EnginePostgres, EngineSQLite, EngineMySQL:
	default:
		return fmt.Errorf("%w: database.engine must be one of: postgres, sqlite, mysql (got %q)", ErrInvalid, d.Engine)
	}

	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: database.name is required", ErrInvalid)
	}

	switch d.Engine {
	case EngineSQLite:
		if d.Host != "" || d.Port != 0 {
			return fmt.Errorf("%w: database.host and database.port are server-engine options", ErrInvalid)
		}
		if d.User != "" || d.Password != "" {
			return fmt.Errorf("%w: database credentials are server-engine options", ErrInvalid)
		}
	case EnginePostgres:
		if d.Host == "" {
			d.Host = "localhost"
		}
		if d.Port == 0 {
			d.Port = 5432
		}
	case EngineMySQL:
		if d.Host == "" {
			d.Host = "localhost"
		}
		if d.Port == 0 {
			d.Port = 3306
		}
	}

	if s.Server.Host == "" {
		s.Server.Host = "127.0.0.1"
	}
	if s.Server.Port == 0 {
		s.Server.Port = 8080
	}
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port out of range (got %d)", ErrInvalid, s.Server.Port)
	}

	if s.Log.File != "" {
		if s.Log.MaxSizeMB <= 0 {
			s.Log.MaxSizeMB = 10
		}
		if s.Log.MaxBackups <= 0 {
			s.Log.MaxBackups = 3
		}
	}

	return nil
}
