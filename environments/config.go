package environments

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Redis   RedisConfig
	Smsc    SmscConfig
	Mailing MailingConfig
}

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SmscConfig struct {
	Login     string
	Password  string
	Sender    string
	SendURL   string
	StatusURL string
	Timeout   time.Duration
}

type MailingConfig struct {
	// Phones every broadcast is sent to, fixed by the operator at deploy time.
	Phones []string
	// How often a connected viewer receives a fresh status snapshot.
	PublishInterval time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: GetEnv("SERVER_PORT", "5000"),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		Smsc: SmscConfig{
			Login:     GetEnv("SMSC_LOGIN", ""),
			Password:  GetEnv("SMSC_PASSWORD", ""),
			Sender:    GetEnv("SMSC_SENDER", ""),
			SendURL:   GetEnv("SMSC_SEND_URL", "https://smsc.ru/sys/send.php"),
			StatusURL: GetEnv("SMSC_STATUS_URL", "https://smsc.ru/sys/status.php"),
			Timeout:   time.Duration(GetEnvAsInt("SMSC_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Mailing: MailingConfig{
			Phones:          GetEnvAsList("PHONES", nil),
			PublishInterval: GetEnvAsDuration("STATUS_PUBLISH_INTERVAL", 3*time.Second),
		},
	}
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsList splits a comma-separated variable, dropping blank items.
func GetEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	if len(items) == 0 {
		return defaultValue
	}
	return items
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
