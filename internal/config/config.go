package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr     = ":8000"
	defaultDataDir        = "./storage"
	defaultMaxUploadBytes = 100 << 20
	defaultGCTTLHours     = 24
	defaultGCIntervalMin  = 30
)

type Config struct {
	ListenAddr     string    `yaml:"listen_addr" json:"listen_addr"`
	DataDir        string    `yaml:"data_dir" json:"data_dir"`
	MaxUploadBytes int64     `yaml:"max_upload_bytes" json:"max_upload_bytes"`
	Log            LogConfig `yaml:"log" json:"log"`
	GC             GCConfig  `yaml:"gc" json:"gc"`
}

// LogConfig задаёт уровень и формат zap-логгера.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// GCConfig задаёт периодичность чистки незавершённых записей в staging.
type GCConfig struct {
	TTLHours    int `yaml:"ttl_hours" json:"ttl_hours"`
	IntervalMin int `yaml:"interval_min" json:"interval_min"`
}

// Default возвращает конфигурацию, с которой сервис поднимается без config.yaml.
func Default() *Config {
	return &Config{
		ListenAddr:     defaultListenAddr,
		DataDir:        defaultDataDir,
		MaxUploadBytes: defaultMaxUploadBytes,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		GC: GCConfig{
			TTLHours:    defaultGCTTLHours,
			IntervalMin: defaultGCIntervalMin,
		},
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Отсутствующий файл не ошибка: остаются значения по умолчанию.
func Load() (*Config, error) {
	c := Default()

	path := getenv("CONFIG_PATH", "./config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if err := envInt64("MAX_UPLOAD_BYTES", &c.MaxUploadBytes); err != nil {
		return nil, err
	}
	if err := envInt("GC_TTL_HOURS", &c.GC.TTLHours); err != nil {
		return nil, err
	}
	if err := envInt("GC_INTERVAL_MIN", &c.GC.IntervalMin); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate проверяет, что с конфигурацией вообще можно стартовать.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen_addr is empty")
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("max_upload_bytes must be >= 0")
	}
	if c.GC.TTLHours < 0 || c.GC.IntervalMin < 0 {
		return fmt.Errorf("gc settings must be >= 0")
	}

	return nil
}

// GCTTL и GCInterval переводят настройки GC в time.Duration.
func (c *Config) GCTTL() time.Duration { return time.Duration(c.GC.TTLHours) * time.Hour }

func (c *Config) GCInterval() time.Duration { return time.Duration(c.GC.IntervalMin) * time.Minute }

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
