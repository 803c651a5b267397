package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	WebConfig struct {
		Address         string
		SessionIdle     time.Duration
		ShutdownTimeout time.Duration
	}

	APIConfig struct {
		BaseURL string
		Timeout time.Duration
		Demo    bool // serve from the in-memory API instead of BaseURL
	}

	Config struct {
		Env          string // DEV (local; default), TEST, PROD
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		Web          WebConfig
		API          APIConfig
	}
)

// NewConfig loads the app configuration from the environment.
// `config/.env.<env>` is loaded first if it exists; variables are read with the `<ENV>_` prefix,
// e.g. `DEV_API_BASEURL`.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Gradebook")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbar.token", "")
	conf.SetDefault("web.address", ":8080")
	conf.SetDefault("web.sessionIdle", 30*time.Minute)
	conf.SetDefault("web.shutdownTimeout", 10*time.Second)
	conf.SetDefault("api.baseURL", "http://localhost:3001")
	conf.SetDefault("api.timeout", 10*time.Second)
	conf.SetDefault("api.demo", false)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbar.token"),
		Web: WebConfig{
			Address:         conf.GetString("web.address"),
			SessionIdle:     conf.GetDuration("web.sessionIdle"),
			ShutdownTimeout: conf.GetDuration("web.shutdownTimeout"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(conf.GetString("api.baseURL"), "/"),
			Timeout: conf.GetDuration("api.timeout"),
			Demo:    conf.GetBool("api.demo"),
		},
	}
}

// configDir is `$CONFIG_DIR`, or `./config` when unset.
func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(wd, "config")
}
