package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string `mapstructure:"PORT"`
	DatabasePath      string `mapstructure:"DATABASE_PATH"`
	OpenAIAPIKey      string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel       string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL     string `mapstructure:"OPENAI_BASE_URL"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	ProfileName       string `mapstructure:"PROFILE_NAME"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	// Session state is in-memory only; the default database dies with the process.
	viper.SetDefault("DATABASE_PATH", ":memory:")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.SetDefault("PROFILE_NAME", "Alex")

	viper.BindEnv("OPENAI_API_KEY")
	viper.BindEnv("OPENAI_MODEL")
	viper.BindEnv("OPENAI_BASE_URL")
	viper.BindEnv("SESSION_TTL_MINUTES")
	viper.BindEnv("PROFILE_NAME")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
