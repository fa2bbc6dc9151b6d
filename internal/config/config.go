package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	SMSProviderLog    = "log"
	SMSProviderTwilio = "twilio"
)

type Config struct {
	Server       ServerConfig
	Storage      StorageConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	OTP          OTPConfig
	SMS          SMSConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type StorageConfig struct {
	Driver string // postgres or memory
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type OTPConfig struct {
	TTL          time.Duration
	Length       int
	PurgeSpec    string // cron spec for evicting expired codes
	ExposeInDemo bool   // return the code in the send-otp response outside production
}

type SMSConfig struct {
	Provider         string // log or twilio
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromPhone  string
}

type NotificationConfig struct {
	MQTTEnabled  bool
	MQTTBroker   string
	MQTTClientID string
	MQTTUsername string
	MQTTPassword string
	TopicPrefix  string
	WebSocket    bool

	DeliveryTimeout time.Duration // per notifier, per event
	SocketPongWait  time.Duration // idle sockets are dropped after this
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	AuthRPS      float64 // Requests per second for OTP endpoints
	AuthBurst    int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "development")

	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_EXPIRY_HOURS", 30*24)

	v.SetDefault("OTP_TTL_SECONDS", 300)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_PURGE_SPEC", "@every 1m")
	v.SetDefault("OTP_EXPOSE_IN_DEMO", false)

	v.SetDefault("SMS_PROVIDER", SMSProviderLog)

	v.SetDefault("NOTIFY_MQTT_ENABLED", false)
	v.SetDefault("MQTT_CLIENT_ID", "skillconnect-api")
	v.SetDefault("MQTT_TOPIC_PREFIX", "skillconnect")
	v.SetDefault("NOTIFY_WEBSOCKET_ENABLED", true)
	v.SetDefault("NOTIFY_DELIVERY_TIMEOUT", "3s")
	v.SetDefault("NOTIFY_SOCKET_PONG_WAIT", "60s")

	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 20)
	v.SetDefault("RATE_LIMIT_AUTH_RPS", 0.2)
	v.SetDefault("RATE_LIMIT_AUTH_BURST", 5)

	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	v.SetDefault("CORS_MAX_AGE", 43200)
}

func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			TTL:          time.Duration(v.GetInt("OTP_TTL_SECONDS")) * time.Second,
			Length:       v.GetInt("OTP_LENGTH"),
			PurgeSpec:    v.GetString("OTP_PURGE_SPEC"),
			ExposeInDemo: v.GetBool("OTP_EXPOSE_IN_DEMO"),
		},
		SMS: SMSConfig{
			Provider:         v.GetString("SMS_PROVIDER"),
			TwilioAccountSID: v.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  v.GetString("TWILIO_AUTH_TOKEN"),
			TwilioFromPhone:  v.GetString("TWILIO_FROM_PHONE"),
		},
		Notification: NotificationConfig{
			MQTTEnabled:  v.GetBool("NOTIFY_MQTT_ENABLED"),
			MQTTBroker:   v.GetString("MQTT_BROKER"),
			MQTTClientID: v.GetString("MQTT_CLIENT_ID"),
			MQTTUsername: v.GetString("MQTT_USERNAME"),
			MQTTPassword: v.GetString("MQTT_PASSWORD"),
			TopicPrefix:  v.GetString("MQTT_TOPIC_PREFIX"),
			WebSocket:    v.GetBool("NOTIFY_WEBSOCKET_ENABLED"),

			DeliveryTimeout: v.GetDuration("NOTIFY_DELIVERY_TIMEOUT"),
			SocketPongWait:  v.GetDuration("NOTIFY_SOCKET_PONG_WAIT"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
			AuthRPS:      v.GetFloat64("RATE_LIMIT_AUTH_RPS"),
			AuthBurst:    v.GetInt("RATE_LIMIT_AUTH_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   v.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   v.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   v.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetInt("CORS_MAX_AGE"),
		},
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is missing. Please set JWT_SECRET environment variable")
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return errors.New("database configuration is missing. Please set DB_HOST and DB_NAME environment variables")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.SMS.Provider {
	case SMSProviderLog:
	case SMSProviderTwilio:
		if c.SMS.TwilioAccountSID == "" || c.SMS.TwilioAuthToken == "" || c.SMS.TwilioFromPhone == "" {
			return errors.New("twilio SMS provider requires TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_PHONE")
		}
	default:
		return fmt.Errorf("unknown SMS provider %q", c.SMS.Provider)
	}
	if c.Notification.MQTTEnabled && c.Notification.MQTTBroker == "" {
		return errors.New("MQTT notifications enabled but MQTT_BROKER is empty")
	}
	if c.OTP.TTL <= 0 || c.OTP.Length <= 0 {
		return errors.New("OTP_TTL_SECONDS and OTP_LENGTH must be positive")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
