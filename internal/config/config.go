// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Slack      SlackConfig
	Generation GenerationConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	Port     string
	LogLevel string
}

type SlackConfig struct {
	BotToken string
	AppToken string
}

type GenerationConfig struct {
	ReplicateToken     string
	OpenAIKey          string
	TimeoutSeconds     int
	ReferenceImageURL  string
	ReferenceImagePath string
}

type StorageConfig struct {
	Host      string
	Port      int
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// DefaultReferenceImageURL points at the public Bombo character artwork.
const DefaultReferenceImageURL = "https://github.com/maakle/bombo/blob/main/images/bombo.jpeg?raw=true"

// requiredKeys must all be present in the environment; startup aborts otherwise.
var requiredKeys = []string{
	"SLACK_BOT_TOKEN",
	"SLACK_APP_TOKEN",
	"REPLICATE_API_TOKEN",
	"OPENAI_API_KEY",
	"STACKHERO_MINIO_HOST",
	"STACKHERO_MINIO_ACCESS_KEY",
	"STACKHERO_MINIO_SECRET_KEY",
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("GENERATION_TIMEOUT_SECONDS", 120)
		viper.SetDefault("REFERENCE_IMAGE_URL", DefaultReferenceImageURL)
		viper.SetDefault("REFERENCE_IMAGE_PATH", "")
		viper.SetDefault("STACKHERO_MINIO_BUCKET", "bombo-images")
		viper.SetDefault("STACKHERO_MINIO_PORT", 443)
		viper.SetDefault("STACKHERO_MINIO_REGION", "us-east-1")
		viper.SetDefault("STACKHERO_MINIO_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:     viper.GetString("SERVER_PORT"),
				LogLevel: viper.GetString("LOG_LEVEL"),
			},
			Slack: SlackConfig{
				BotToken: viper.GetString("SLACK_BOT_TOKEN"),
				AppToken: viper.GetString("SLACK_APP_TOKEN"),
			},
			Generation: GenerationConfig{
				ReplicateToken:     viper.GetString("REPLICATE_API_TOKEN"),
				OpenAIKey:          viper.GetString("OPENAI_API_KEY"),
				TimeoutSeconds:     viper.GetInt("GENERATION_TIMEOUT_SECONDS"),
				ReferenceImageURL:  viper.GetString("REFERENCE_IMAGE_URL"),
				ReferenceImagePath: viper.GetString("REFERENCE_IMAGE_PATH"),
			},
			Storage: StorageConfig{
				Host:      viper.GetString("STACKHERO_MINIO_HOST"),
				Port:      viper.GetInt("STACKHERO_MINIO_PORT"),
				AccessKey: viper.GetString("STACKHERO_MINIO_ACCESS_KEY"),
				SecretKey: viper.GetString("STACKHERO_MINIO_SECRET_KEY"),
				Bucket:    viper.GetString("STACKHERO_MINIO_BUCKET"),
				Region:    viper.GetString("STACKHERO_MINIO_REGION"),
				UseSSL:    viper.GetBool("STACKHERO_MINIO_USE_SSL"),
			},
		}
	})

	return instance
}

// Validate reports every required environment variable that is missing.
// A non-nil error is a fatal startup condition.
func Validate() error {
	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(viper.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
