package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	pkgconfig "habittracker/pkg/config"
)

// Duration parses "10m"-style strings from YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// TelegramConfig holds the bot token used by the notifier. The token is
// verified against the Bot API when the notifier starts, not here, so the
// admin command can run without one.
type TelegramConfig struct {
	Token string `yaml:"token"`
}

// SchedulerConfig holds the reminder sweep parameters. Period doubles as the
// sweep trigger interval and the window width, which is what keeps
// consecutive windows contiguous and non-overlapping.
type SchedulerConfig struct {
	Lookahead            Duration `yaml:"lookahead"`
	Period               Duration `yaml:"period"`
	NotifyTimeout        Duration `yaml:"notify_timeout"`
	ReportUTCOffsetHours int      `yaml:"report_utc_offset_hours"`
	DedupTTL             Duration `yaml:"dedup_ttl"`
}

type Config struct {
	Server    pkgconfig.ServerConfig `yaml:"server"`
	DB        pkgconfig.DBConfig     `yaml:"db"`
	Redis     pkgconfig.RedisConfig  `yaml:"redis"`
	MQ        pkgconfig.MQConfig     `yaml:"mq"`
	JWT       pkgconfig.JWTConfig    `yaml:"jwt"`
	Telegram  TelegramConfig         `yaml:"telegram"`
	Scheduler SchedulerConfig        `yaml:"scheduler"`
}

// ReportZone returns the fixed zone reminders render occurrence times in.
func (c *SchedulerConfig) ReportZone() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.ReportUTCOffsetHours), c.ReportUTCOffsetHours*3600)
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = ":8080"
	cfg.DB.Port = 5432
	cfg.Scheduler.Lookahead = Duration{10 * time.Minute}
	cfg.Scheduler.Period = Duration{10 * time.Minute}
	cfg.Scheduler.NotifyTimeout = Duration{5 * time.Second}
	cfg.Scheduler.ReportUTCOffsetHours = 3
	cfg.Scheduler.DedupTTL = Duration{24 * time.Hour}
	return cfg
}

// Load reads the YAML config at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	pkgconfig.OverrideServerFromEnv(&cfg.Server)
	pkgconfig.OverrideDBFromEnv(&cfg.DB)
	pkgconfig.OverrideRedisFromEnv(&cfg.Redis)
	pkgconfig.OverrideMQFromEnv(&cfg.MQ)
	pkgconfig.OverrideJWTFromEnv(&cfg.JWT)
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	// validator cannot see through the Duration wrapper
	if c.Scheduler.Lookahead.Duration <= 0 {
		return fmt.Errorf("scheduler.lookahead must be positive")
	}
	if c.Scheduler.Period.Duration <= 0 {
		return fmt.Errorf("scheduler.period must be positive")
	}
	if c.Scheduler.NotifyTimeout.Duration <= 0 {
		return fmt.Errorf("scheduler.notify_timeout must be positive")
	}
	return nil
}
