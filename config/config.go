package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the service. It is loaded once at
// startup and passed explicitly to whatever needs it; nothing reads the
// environment after this point.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	MongoURI      string `mapstructure:"MONGODB_URI"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// LoadConfig reads configuration from a .env file in path, falling back to
// environment variables when the file is absent.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DATABASE", "task_manager")
	// Registers the key so AutomaticEnv picks it up during Unmarshal.
	viper.SetDefault("JWT_SECRET", "")

	err = viper.ReadInConfig()
	if err != nil {
		// The config file is optional; environment variables cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
