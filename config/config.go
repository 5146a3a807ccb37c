package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Merchant MerchantConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	URL      string
}

// MerchantConfig identifies the payee printed on invoices and encoded into
// the UPI payment QR.
type MerchantConfig struct {
	Name     string `mapstructure:"name"`
	VPA      string `mapstructure:"vpa"`
	Currency string `mapstructure:"currency"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	viper.AutomaticEnv()

	// Fallback to PORT if SERVER_PORT is missing (common on hosted platforms)
	viper.BindEnv("SERVER_PORT", "PORT")
	viper.BindEnv("DATABASE_URL")

	AppConfig = &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			URL:      viper.GetString("DATABASE_URL"),
		},
	}

	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = "8080"
	}

	// Merchant identity lives in a TOML file alongside the code so it can be
	// edited without touching the environment.
	merchantViper := viper.New()
	merchantViper.SetConfigFile("config/config.toml")
	merchantViper.SetConfigType("toml")
	if err := merchantViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using default merchant info: %v", err)
	} else if err := merchantViper.UnmarshalKey("merchant", &AppConfig.Merchant); err != nil {
		log.Printf("Error: Failed to unmarshal merchant info from TOML: %v", err)
	}

	if AppConfig.Merchant.Name == "" {
		AppConfig.Merchant.Name = "Merchant"
	}
	if AppConfig.Merchant.Currency == "" {
		AppConfig.Merchant.Currency = "INR"
	}

	log.Printf("Configuration loaded:")
	log.Printf("- Server Port: %s", AppConfig.Server.Port)
	log.Printf("- Server Env: %s", AppConfig.Server.Env)
	log.Printf("- Database Host: %s", AppConfig.Database.Host)
	log.Printf("- Database Name: %s", AppConfig.Database.Name)
	log.Printf("- Database URL: %s", func() string {
		if AppConfig.Database.URL != "" {
			return "SET"
		}
		return "NOT SET"
	}())
	log.Printf("- Merchant: %s (%s)", AppConfig.Merchant.Name, AppConfig.Merchant.VPA)
}
