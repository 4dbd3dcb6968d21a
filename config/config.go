// Ininicializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/studyspot/studyspot/internal/entity"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Catalog      CatalogConfig      `mapstructure:"catalog"`
	Booking      BookingConfig      `mapstructure:"booking"`
	Notification NotificationConfig `mapstructure:"notification"`
	Queue        QueueConfig        `mapstructure:"queue"`
	Worker       WorkerConfig       `mapstructure:"worker"`
}

type ServerConfig struct {
	AppVersion   string        `mapstructure:"app_version"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Idle_timeout time.Duration `mapstructure:"idle_timeout"`
	Mode         string        `mapstructure:"mode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// Настройки пула соединений
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"`
}

type BookingConfig struct {
	StatePrefix string `mapstructure:"state_prefix"`
}

type NotificationConfig struct {
	DismissAfter time.Duration `mapstructure:"dismiss_after"`
}

type QueueConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MainQueue    string        `mapstructure:"main_queue"`
	DelayedQueue string        `mapstructure:"delayed_queue"`
	MaxRetries   int           `mapstructure:"max_retries"`
	BaseDelay    time.Duration `mapstructure:"base_delay"`
}

type WorkerConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}
	return &c, nil
}

// LoadCatalog читает встроенный каталог пространств (read-only вход).
func LoadCatalog(cfg *CatalogConfig) ([]entity.Space, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath(cfg.Path)
	viperInstance.SetConfigName(cfg.Name)
	viperInstance.SetConfigType("yaml")

	if err := viperInstance.ReadInConfig(); err != nil {
		return nil, err
	}

	var spaces []entity.Space
	if err := viperInstance.UnmarshalKey("spaces", &spaces); err != nil {
		return nil, err
	}
	return spaces, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
