package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Workflow WorkflowConfig
	Intake   IntakeConfig
	SMTP     SMTPConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	AccountURL string
	Container  string
	SASToken   string
}

type WorkflowConfig struct {
	EndpointURL    string
	TimeoutSeconds int
}

type IntakeConfig struct {
	UploadTimeoutSeconds int
	SessionTTLMinutes    int
	MaxMaterialSizeMB    int
	CompletedTopic       string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			AccountURL: getEnv("STORAGE_ACCOUNT_URL", ""),
			Container:  getEnv("STORAGE_CONTAINER", "documentos"),
			SASToken:   getEnv("STORAGE_SAS_TOKEN", ""),
		},
		Workflow: WorkflowConfig{
			EndpointURL:    getEnv("WORKFLOW_ENDPOINT_URL", ""),
			TimeoutSeconds: getEnvAsInt("WORKFLOW_TIMEOUT_SECONDS", 30),
		},
		Intake: IntakeConfig{
			UploadTimeoutSeconds: getEnvAsInt("UPLOAD_TIMEOUT_SECONDS", 60),
			SessionTTLMinutes:    getEnvAsInt("INTAKE_SESSION_TTL_MINUTES", 120),
			MaxMaterialSizeMB:    getEnvAsInt("MAX_MATERIAL_SIZE_MB", 10),
			CompletedTopic:       getEnv("SUBMISSION_COMPLETED_TOPIC_NAME", "SUBMISSION_COMPLETED"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Mesa de Radicación"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
