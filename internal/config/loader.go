package config

import (
	"fmt"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/db"

	"github.com/spf13/viper"
)

// Config gathers everything the server needs at startup.
type Config struct {
	ServerAddr     string
	Database       db.Config
	MigrationsPath string
	RatesPath      string
	ReferenceYear  int
	ModelPath      string
	RedisAddr      string
	CORSOrigins    []string
}

// Defaults mirror a local development setup.
func Defaults() Config {
	return Config{
		ServerAddr:     ":8080",
		Database:       db.DefaultConfig(),
		MigrationsPath: "./migrations",
		RatesPath:      "./data/interest_rates.csv",
		ReferenceYear:  2025,
		ModelPath:      "./models/model.json",
		RedisAddr:      "",
		CORSOrigins:    []string{"*"},
	}
}

// Load reads config.yaml from configPath with LOAN_* environment
// overrides; a missing file falls back to defaults plus env.
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("LOAN")

	v.BindEnv("server.addr")
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("rates.path")
	v.BindEnv("rates.reference_year")
	v.BindEnv("model.path")
	v.BindEnv("redis.addr")

	if err := v.ReadInConfig(); err != nil {
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	if v.IsSet("server.addr") {
		cfg.ServerAddr = v.GetString("server.addr")
	}
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("migrations.path") {
		cfg.MigrationsPath = v.GetString("migrations.path")
	}
	if v.IsSet("rates.path") {
		cfg.RatesPath = v.GetString("rates.path")
	}
	if v.IsSet("rates.reference_year") {
		cfg.ReferenceYear = v.GetInt("rates.reference_year")
	}
	if v.IsSet("model.path") {
		cfg.ModelPath = v.GetString("model.path")
	}
	if v.IsSet("redis.addr") {
		cfg.RedisAddr = v.GetString("redis.addr")
	}
	if v.IsSet("cors.origins") {
		cfg.CORSOrigins = v.GetStringSlice("cors.origins")
	}

	return cfg, nil
}
