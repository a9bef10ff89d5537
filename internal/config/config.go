package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Pixel Card Game server
type Config struct {
	loaded         bool
	Host           string `yaml:"host" envconfig:"host"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	RecaptchaSecret string `yaml:"recaptchaSecret" envconfig:"recaptcha_secret"`
	// PlayerCreateDelay is the number of seconds an IP address must wait
	// between account creations
	PlayerCreateDelay int `yaml:"playerCreateDelay" envconfig:"player_create_delay"`
	Log               struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

// DefaultConfig returns the configuration before the file and environment are applied
func DefaultConfig() Config {
	var c Config
	c.Host = "http://localhost:8080"
	c.PGDSN = "host=localhost port=5432 user=postgres password=postgres dbname=postgres sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = ".keys/public.pem"
	c.JWT.PrivateKey = ".keys/private.key"
	c.PlayerCreateDelay = 60
	c.Log.Level = "info"
	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is only an error
// when CARDGAME_CONFIG_FILE names one explicitly; otherwise the defaults
// apply and the environment may override them
func Load() error {
	config = DefaultConfig()

	configFile, explicit := os.LookupEnv("CARDGAME_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
		explicit = false
	}

	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if explicit || !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("cardgame", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
