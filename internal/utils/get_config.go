package utils

import (
	"gopkg.in/yaml.v2"
	"log"
	"os"
	"sync"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// App configuration
	AppPort   string `yaml:"APP_PORT"`
	LogLevel  string `yaml:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT"`
	RulesFile string `yaml:"RULES_FILE"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`
	GeminiURL    string `yaml:"GEMINI_URL"`

	// Recipe search API configuration
	RecipeAPIURL string `yaml:"RECIPE_API_URL"`
	RecipeAPIKey string `yaml:"RECIPE_API_KEY"`
}

var (
	config Config
	mu     sync.RWMutex
)

var defaults = map[string]string{
	"DB_DRIVER":      "postgres",
	"DB_PATH":        "health_kitchen.db",
	"APP_PORT":       "8080",
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "json",
	"GEMINI_MODEL":   "gemini-1.5-flash",
	"GEMINI_URL":     "https://generativelanguage.googleapis.com/v1beta/models",
	"RECIPE_API_URL": "https://api.spoonacular.com/recipes/complexSearch",
}

// LoadConfig reads config.yaml from the working directory. A missing file is
// not fatal: environment variables and defaults still apply.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	var c Config
	err = yaml.Unmarshal(file, &c)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	mu.Lock()
	config = c
	mu.Unlock()
}

// SetConfig overrides a single key at runtime.
func SetConfig(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	if field := configField(&config, key); field != nil {
		*field = value
	}
}

// GetConfig returns the value for key. Environment variables win over the
// YAML file, which wins over built-in defaults.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	mu.RLock()
	field := configField(&config, key)
	var v string
	if field != nil {
		v = *field
	}
	mu.RUnlock()

	if v == "" {
		return defaults[key]
	}
	return v
}

func configField(c *Config, key string) *string {
	switch key {
	case "DB_DRIVER":
		return &c.DBDriver
	case "DB_USER":
		return &c.DBUser
	case "DB_NAME":
		return &c.DBName
	case "DB_PASSWORD":
		return &c.DBPassword
	case "DB_PORT":
		return &c.DBPort
	case "DB_HOST":
		return &c.DBHost
	case "DB_PATH":
		return &c.DBPath
	case "APP_PORT":
		return &c.AppPort
	case "LOG_LEVEL":
		return &c.LogLevel
	case "LOG_FORMAT":
		return &c.LogFormat
	case "RULES_FILE":
		return &c.RulesFile
	case "JWT_SECRET":
		return &c.JWTSecret
	case "APP_URL":
		return &c.AppURL
	case "SMTP_HOST":
		return &c.SMTPHost
	case "SMTP_PORT":
		return &c.SMTPPort
	case "SMTP_SENDER_NAME":
		return &c.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return &c.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return &c.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return &c.AWSS3Bucket
	case "AWS_S3_REGION":
		return &c.AWSS3Region
	case "AWS_ACCESS_KEY":
		return &c.AWSAccessKey
	case "AWS_SECRET_KEY":
		return &c.AWSSecretKey
	case "GEMINI_API_KEY":
		return &c.GeminiAPIKey
	case "GEMINI_MODEL":
		return &c.GeminiModel
	case "GEMINI_URL":
		return &c.GeminiURL
	case "RECIPE_API_URL":
		return &c.RecipeAPIURL
	case "RECIPE_API_KEY":
		return &c.RecipeAPIKey
	default:
		return nil
	}
}
