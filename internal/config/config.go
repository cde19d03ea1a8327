package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	MaxBodyKB      int64         `mapstructure:"MAX_BODY_KB"`

	CRMSubdomain string `mapstructure:"CRM_SUBDOMAIN"`
	CRMAPIKey    string `mapstructure:"CRM_API_KEY"`
	CRMBaseURL   string `mapstructure:"CRM_BASE_URL"`

	OpenAIAPIKey   string  `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL  string  `mapstructure:"OPENAI_BASE_URL"`
	LLMModel       string  `mapstructure:"LLM_MODEL"`
	LLMTemperature float64 `mapstructure:"LLM_TEMPERATURE"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("MAX_BODY_KB", 200)
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TEMPERATURE", 0.2)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveCRMBaseURL returns the explicit CRM_BASE_URL override when set, else
// the endpoint derived from the account subdomain.
func (c Config) ResolveCRMBaseURL() string {
	if c.CRMBaseURL != "" {
		return c.CRMBaseURL
	}
	if c.CRMSubdomain == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.repairshopr.com/api/v1", c.CRMSubdomain)
}
