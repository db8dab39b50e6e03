package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/paygate/pkg/checkout"
	"github.com/Behyna/paygate/pkg/mysql"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "PAYGATE"

type Config struct {
	API      API             `mapstructure:"api"`
	Log      Log             `mapstructure:"log"`
	Database mysql.Config    `mapstructure:"database"`
	Payme    Payme           `mapstructure:"payme"`
	Checkout checkout.Config `mapstructure:"checkout"`
}

type API struct {
	Port string `mapstructure:"port" validate:"required"`
}

type Log struct {
	Development bool `mapstructure:"development"`
}

// Payme holds the merchant-side settings of the provider callback protocol.
type Payme struct {
	Login              string        `mapstructure:"login"`
	Key                string        `mapstructure:"key"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	TransactionTimeout time.Duration `mapstructure:"transaction_timeout" validate:"gte=0"`
	Price              int64         `mapstructure:"price" validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")
	v.SetDefault("log.development", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "paygate")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("payme.login", "Paycom")
	v.SetDefault("payme.key", "")
	v.SetDefault("payme.timeout", 3*time.Second)
	v.SetDefault("payme.transaction_timeout", 12*time.Hour)
	v.SetDefault("payme.price", 0)

	v.SetDefault("checkout.merchant_id", "")
	v.SetDefault("checkout.test_mode", true)
	v.SetDefault("checkout.test_url", checkout.DefaultTestURL)
	v.SetDefault("checkout.production_url", checkout.DefaultProductionURL)
	v.SetDefault("checkout.lang", "")
	v.SetDefault("checkout.callback_url", "")
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

func LoadFrom(path string) (cfg *Config, err error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(path)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err = validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
