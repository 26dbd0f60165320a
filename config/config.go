package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	API      API
	Session  Session
	Draft    Draft
	Autosave Autosave
}

type API struct {
	BaseURL        string
	TimeoutSeconds int
}
type Session struct {
	File string
}
type Draft struct {
	Dir string
}
type Autosave struct {
	Seconds int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SESSION_FILE", ".tamarin-session.json")
	viper.SetDefault("DRAFT_DIR", ".tamarin-drafts")
	viper.SetDefault("AUTOSAVE_SECONDS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.API.BaseURL = viper.GetString("API_BASE_URL")
	config.API.TimeoutSeconds = viper.GetInt("HTTP_TIMEOUT_SECONDS")
	config.Session.File = viper.GetString("SESSION_FILE")
	config.Draft.Dir = viper.GetString("DRAFT_DIR")
	config.Autosave.Seconds = viper.GetInt("AUTOSAVE_SECONDS")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
