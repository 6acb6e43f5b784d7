package config

import (
	"net"
	"strconv"

	"github.com/spf13/viper"

	"hivemind/internal/domain"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host string
	Port int
}

// GameConfig holds default game settings for newly created rooms
type GameConfig struct {
	TimerSeconds int
	PointsToWin  int
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "HIVEMIND"

// SetDefaults registers every config key with its default on the given viper
func SetDefaults(v *viper.Viper) {
	v.SetDefault("bind", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("timer-seconds", 30)
	v.SetDefault("points-to-win", 10)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
}

// FromViper builds a Config from a prepared viper instance
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Host: v.GetString("bind"),
			Port: v.GetInt("port"),
		},
		Game: GameConfig{
			TimerSeconds: v.GetInt("timer-seconds"),
			PointsToWin:  v.GetInt("points-to-win"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("log-level"),
			Format: v.GetString("log-format"),
		},
	}
}

// Addr returns the server address in host:port format
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// RoomDefaults returns the settings applied to newly created rooms
func (c *Config) RoomDefaults() domain.Settings {
	settings := domain.DefaultSettings()
	if c.Game.TimerSeconds > 0 {
		settings.TimerSeconds = c.Game.TimerSeconds
	}
	if c.Game.PointsToWin > 0 {
		settings.PointsToWin = c.Game.PointsToWin
	}
	return settings
}
