package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is built once at startup and handed to every component that talks to
// an external provider.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	GinMode    string `mapstructure:"GIN_MODE"`
	ClientDir  string `mapstructure:"CLIENT_DIR"`

	StoreDriver     string `mapstructure:"STORE_DRIVER"`
	MongoURL        string `mapstructure:"MONGODB_URL"`
	MongoDatabase   string `mapstructure:"MONGODB_DATABASE"`
	MongoCollection string `mapstructure:"MONGODB_COLLECTION"`

	ImageProvider    string `mapstructure:"IMAGE_PROVIDER"`
	OpenAIAPIKey     string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIImageModel string `mapstructure:"OPENAI_IMAGE_MODEL"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiImageModel string `mapstructure:"GEMINI_IMAGE_MODEL"`

	MediaDriver         string `mapstructure:"MEDIA_DRIVER"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	S3Endpoint          string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey         string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey         string `mapstructure:"S3_SECRET_KEY"`
	S3Bucket            string `mapstructure:"S3_BUCKET"`
	S3UseSSL            bool   `mapstructure:"S3_USE_SSL"`
	S3PublicURL         string `mapstructure:"S3_PUBLIC_URL"`
	GenerationFolder    string `mapstructure:"GENERATION_FOLDER"`

	PromptsFile string `mapstructure:"PROMPTS_FILE"`
	APIURL      string `mapstructure:"VISIONARY_API_URL"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	OTLPEndpoint    string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
}

var defaults = map[string]any{
	"SERVER_PORT":                 ":8080",
	"GIN_MODE":                    "release",
	"CLIENT_DIR":                  "",
	"STORE_DRIVER":                "mongo",
	"MONGODB_URL":                 "mongodb://localhost:27017",
	"MONGODB_DATABASE":            "visionary",
	"MONGODB_COLLECTION":          "posts",
	"IMAGE_PROVIDER":              "openai",
	"OPENAI_API_KEY":              "",
	"OPENAI_BASE_URL":             "",
	"OPENAI_IMAGE_MODEL":          "dall-e-2",
	"GEMINI_API_KEY":              "",
	"GEMINI_IMAGE_MODEL":          "gemini-2.5-flash-image-preview",
	"MEDIA_DRIVER":                "cloudinary",
	"CLOUDINARY_CLOUD_NAME":       "",
	"CLOUDINARY_API_KEY":          "",
	"CLOUDINARY_API_SECRET":       "",
	"S3_ENDPOINT":                 "localhost:9000",
	"S3_ACCESS_KEY":               "minio",
	"S3_SECRET_KEY":               "minio123",
	"S3_BUCKET":                   "visionary",
	"S3_USE_SSL":                  false,
	"S3_PUBLIC_URL":               "",
	"GENERATION_FOLDER":           "generated_images",
	"PROMPTS_FILE":                "",
	"VISIONARY_API_URL":           "http://localhost:8080",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "text",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_SERVICE_NAME":           "visionary",
}

// Load reads the environment and, when CONFIG_PATH is set, a config file on top
// of the defaults. Environment variables win over the file.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
