package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/goaltrack/internal/model"
)

const (
	EnvPrefix       = "GOALTRACK"
	projectFileName = "goaltrack.yaml"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Storage       StorageConfig       `yaml:"storage" mapstructure:"storage"`
	AI            AIConfig            `yaml:"ai" mapstructure:"ai"`
	Progress      ProgressConfig      `yaml:"progress" mapstructure:"progress"`
	Notifications NotificationsConfig `yaml:"notifications" mapstructure:"notifications"`
	Web           WebConfig           `yaml:"web" mapstructure:"web"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver" mapstructure:"driver"`
	Path      string `yaml:"path" mapstructure:"path"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

type AIConfig struct {
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	ImageModel string        `yaml:"image_model" mapstructure:"image_model"`
	ChatModel  string        `yaml:"chat_model" mapstructure:"chat_model"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type ProgressConfig struct {
	Policy      string `yaml:"policy" mapstructure:"policy"`
	WeeklyBonus int    `yaml:"weekly_bonus" mapstructure:"weekly_bonus"`
	XPPerTask   int    `yaml:"xp_per_task" mapstructure:"xp_per_task"`
}

type NotificationsConfig struct {
	Desktop            bool           `yaml:"desktop" mapstructure:"desktop"`
	ReminderTime       string         `yaml:"reminder_time" mapstructure:"reminder_time"`
	WeeklyReviewSpec   string         `yaml:"weekly_review_spec" mapstructure:"weekly_review_spec"`
	Retention          int            `yaml:"retention" mapstructure:"retention"`
	CelebrationSeconds int            `yaml:"celebration_seconds" mapstructure:"celebration_seconds"`
	SchedulerBuffer    int            `yaml:"scheduler_buffer" mapstructure:"scheduler_buffer"`
	Telegram           TelegramConfig `yaml:"telegram" mapstructure:"telegram"`
}

type TelegramConfig struct {
	Token  string `yaml:"token" mapstructure:"token"`
	ChatID int64  `yaml:"chat_id" mapstructure:"chat_id"`
}

func (t TelegramConfig) Enabled() bool {
	return strings.TrimSpace(t.Token) != "" && t.ChatID != 0
}

type WebConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DataDir is where the database lives unless storage.path says otherwise.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".goaltrack"
	}
	return filepath.Join(home, ".goaltrack")
}

func GlobalConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return projectFileName
	}
	return filepath.Join(cwd, projectFileName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", filepath.Join(DataDir(), "goaltrack.db"))
	v.SetDefault("storage.key_prefix", "goal-track-ai-")

	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.image_model", "gpt-image-1")
	v.SetDefault("ai.chat_model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("progress.policy", "uniform")
	v.SetDefault("progress.weekly_bonus", 20)
	v.SetDefault("progress.xp_per_task", 10)

	v.SetDefault("notifications.desktop", true)
	v.SetDefault("notifications.reminder_time", "20:00")
	v.SetDefault("notifications.weekly_review_spec", "0 0 18 * * 0")
	v.SetDefault("notifications.retention", 50)
	v.SetDefault("notifications.celebration_seconds", 7)
	v.SetDefault("notifications.scheduler_buffer", 64)
	v.SetDefault("notifications.telegram.token", "")
	v.SetDefault("notifications.telegram.chat_id", 0)

	v.SetDefault("web.addr", "127.0.0.1:8080")
}

// Load reads configuration from defaults, the first config file found and
// GOALTRACK_* environment variables, in increasing precedence. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "OPENAI_API_KEY")

	file, err := resolveFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsedFile reports which file Load would read, or "" for none.
func UsedFile(path string) string {
	file, err := resolveFile(path)
	if err != nil {
		return ""
	}
	return file
}

func resolveFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return path, nil
	}
	for _, candidate := range []string{ProjectConfigPath(), GlobalConfigPath()} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return os.ErrNotExist
	}
	return godotenv.Load(existing...)
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "gorm", "memory":
	default:
		return fmt.Errorf("%w: storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.Driver != "memory" && strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("%w: storage.path is required", ErrInvalidConfig)
	}
	switch c.Progress.Policy {
	case "uniform", "weekly_bonus":
	default:
		return fmt.Errorf("%w: progress.policy %q", ErrInvalidConfig, c.Progress.Policy)
	}
	if c.Progress.XPPerTask <= 0 {
		return fmt.Errorf("%w: progress.xp_per_task must be positive", ErrInvalidConfig)
	}
	if _, err := model.ParseDailyTime(c.Notifications.ReminderTime); err != nil {
		return fmt.Errorf("%w: notifications.reminder_time: %v", ErrInvalidConfig, err)
	}
	if c.Notifications.Retention <= 0 {
		return fmt.Errorf("%w: notifications.retention must be positive", ErrInvalidConfig)
	}
	if c.Notifications.CelebrationSeconds <= 0 {
		return fmt.Errorf("%w: notifications.celebration_seconds must be positive", ErrInvalidConfig)
	}
	if c.Notifications.SchedulerBuffer <= 0 {
		return fmt.Errorf("%w: notifications.scheduler_buffer must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) ReminderAt() model.DailyTime {
	t, err := model.ParseDailyTime(c.Notifications.ReminderTime)
	if err != nil {
		return model.DailyTime{Hour: 20}
	}
	return t
}

func (c *Config) CelebrationDuration() time.Duration {
	return time.Duration(c.Notifications.CelebrationSeconds) * time.Second
}
