package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	DBPath     string `mapstructure:"db_path"`
	ReadLimit  int64  `mapstructure:"read_limit"`
	SendBuffer int    `mapstructure:"send_buffer"`
	Secret     string `mapstructure:"secret"`

	BotName       string `mapstructure:"bot_name"`
	ResponderRoom string `mapstructure:"responder_room"`

	MessageRate   int           `mapstructure:"message_rate"`
	MessageWindow time.Duration `mapstructure:"message_window"`

	OpenAI OpenAIConfig `mapstructure:"openai"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 3000)
	v.SetDefault("static_path", "./public")
	v.SetDefault("db_path", "./chathaven.db")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("send_buffer", 32)
	v.SetDefault("bot_name", "Bot")
	v.SetDefault("responder_room", "AI")
	v.SetDefault("message_rate", 20)
	v.SetDefault("message_window", "10s")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.timeout", "30s")

	// The key never lives in the yaml file.
	v.SetDefault("openai.api_key", os.Getenv("OPENAI_API_KEY"))

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Responder room: %s\n", cfg.Mode, cfg.Port, cfg.ResponderRoom)
	return &cfg, nil
}
