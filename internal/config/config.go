package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBUrl    string `mapstructure:"DB_URL"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	// Socrata open-data source for building footprints.
	BuildingsURL string `mapstructure:"BUILDINGS_URL"`
	// Default bounding box, "minLat,minLng,maxLat,maxLng".
	DefaultBBox string `mapstructure:"DEFAULT_BBOX"`
	FetchLimit  int    `mapstructure:"FETCH_LIMIT"`

	// External natural-language -> filter translation service.
	TranslateURL string `mapstructure:"TRANSLATE_URL"`
	TranslateKey string `mapstructure:"TRANSLATE_KEY"`
}

func LoadConfig() (c Config, err error) {
	// Get environment type from ENV variable or use development as default
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Set default values
	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("BUILDINGS_URL", "https://data.calgary.ca/resource/cchr-krqg.json")
	viper.SetDefault("DEFAULT_BBOX", "51.046,-114.071,51.049,-114.065")
	viper.SetDefault("FETCH_LIMIT", 150)

	// Load environment file
	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".") // Look in the project root directory

	// Environment variables take precedence over config file
	viper.AutomaticEnv()

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return c, err
		}
	}

	// Map the values to the Config struct
	if err = viper.Unmarshal(&c); err != nil {
		return
	}

	current = c
	return
}

var current Config

// Current returns the configuration loaded by the last LoadConfig call.
func Current() Config {
	return current
}

// Set replaces the active configuration. Used when the caller assembles
// a fallback configuration by hand.
func Set(c Config) {
	current = c
}
