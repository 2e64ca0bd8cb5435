package settings

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var lock = &sync.Mutex{}
var singleSettingsInstace *settings

type settings struct {
	DB_USER          string
	DB_PASS          string
	PORT             string
	MONGO_DB         string
	MONGO_HOST       string
	MONGO_CONNECTION string
	NATS_HOST        string
	AWS_BUCKET       string
	AWS_REGION       string
	ELS_HOST         string
	ELS_PASSWORD     string
	ELS_PORT         int
	ELS_USERNAME     string
	CLIENT_URL       string
	NODE_ENV         string
	RATE_LIMIT       uint
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	number, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("%s must be a number", key)
	}
	return number
}

func newSettings() *settings {
	return &settings{
		DB_USER:          os.Getenv("DB_USER"),
		DB_PASS:          os.Getenv("DB_PASS"),
		PORT:             getEnv("PORT", "3000"),
		MONGO_DB:         getEnv("MONGO_DB", "Academix"),
		MONGO_HOST:       getEnv("MONGO_HOST", "cluster0.tkd5xye.mongodb.net"),
		MONGO_CONNECTION: getEnv("MONGO_CONNECTION", "mongodb+srv"),
		NATS_HOST:        os.Getenv("NATS_HOST"),
		ELS_HOST:         os.Getenv("ELS_HOST"),
		ELS_PORT:         getEnvInt("ELS_PORT", 9200),
		ELS_PASSWORD:     os.Getenv("ELS_PASSWORD"),
		ELS_USERNAME:     os.Getenv("ELS_USERNAME"),
		AWS_BUCKET:       os.Getenv("AWS_BUCKET"),
		AWS_REGION:       os.Getenv("AWS_REGION"),
		CLIENT_URL:       os.Getenv("CLIENT_URL"),
		NODE_ENV:         getEnv("NODE_ENV", "dev"),
		RATE_LIMIT:       uint(getEnvInt("RATE_LIMIT", 7)),
	}
}

func init() {
	if os.Getenv("NODE_ENV") != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment")
		}
	}
}

func (s *settings) IsProd() bool {
	return s.NODE_ENV == "prod"
}

func GetSettings() *settings {
	lock.Lock()
	defer lock.Unlock()
	if singleSettingsInstace == nil {
		singleSettingsInstace = newSettings()
	}
	return singleSettingsInstace
}
