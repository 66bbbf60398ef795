package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string `mapstructure:"mode"`
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
	Secret     string `mapstructure:"secret"`
	SendBuffer int    `mapstructure:"send_buffer"`
	ReadLimit  int64  `mapstructure:"read_limit"`

	CodeLength int           `mapstructure:"code_length"`
	RoomTTL    time.Duration `mapstructure:"room_ttl"`
	MaxRooms   int           `mapstructure:"max_rooms"`
	// PINRequired is accepted but rooms are still created with whatever
	// PIN the client supplied, or none. See DESIGN.md.
	PINRequired bool `mapstructure:"pin_required"`
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

	v.SetEnvPrefix("beacon")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("secret", "beacon-dev-secret")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("code_length", 6)
	v.SetDefault("room_ttl", "1200s")
	v.SetDefault("max_rooms", 10)
	v.SetDefault("pin_required", false)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Rooms: %d max, ttl %s\n", cfg.Mode, cfg.Port, cfg.MaxRooms, cfg.RoomTTL)
	return &cfg, nil
}
