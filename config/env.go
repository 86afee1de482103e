package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	LDAPURL              string
	LDAPBindDN           string
	LDAPBindPassword     string
	LDAPFallbackURL      string
	LDAPFallbackBindDN   string
	LDAPFallbackPassword string
	LDAPBaseDN           string
	LDAPLoginDomain      string
	LDAPSkipVerify       bool
	AdminEmployeeNumbers string

	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SMTPFrom       string
	PurchasingMail string

	CatalogPath    string
	JWTSecret      string
	JWTExpiry      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "8h"))
	if err != nil {
		sessionTTL = 8 * time.Hour
	}

	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "10s"))
	if err != nil {
		requestTimeout = 10 * time.Second
	}

	skipVerify, _ := strconv.ParseBool(getEnv("LDAP_SKIP_VERIFY", "false"))

	AppConfig = &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("APP_PORT", getEnv("PORT", "8082")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "supply_portal"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		LDAPURL:              getEnv("LDAP_URL", "ldap://localhost:389"),
		LDAPBindDN:           getEnv("LDAP_BIND_DN", ""),
		LDAPBindPassword:     getEnv("LDAP_BIND_PASSWORD", ""),
		LDAPFallbackURL:      getEnv("LDAP_FALLBACK_URL", ""),
		LDAPFallbackBindDN:   getEnv("LDAP_FALLBACK_BIND_DN", ""),
		LDAPFallbackPassword: getEnv("LDAP_FALLBACK_BIND_PASSWORD", ""),
		LDAPBaseDN:           getEnv("LDAP_BASE_DN", ""),
		LDAPLoginDomain:      getEnv("LDAP_LOGIN_DOMAIN", ""),
		LDAPSkipVerify:       skipVerify,
		AdminEmployeeNumbers: getEnv("ADMIN_EMPLOYEE_NUMBERS", ""),

		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       smtpPort,
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASS", ""),
		SMTPFrom:       getEnv("SMTP_FROM", "magatzem@example.org"),
		PurchasingMail: getEnv("PURCHASING_MAIL", "compres@example.org"),

		CatalogPath:    getEnv("CATALOG_PATH", "./data/cataleg.xlsx"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpiry:      getEnv("JWT_EXPIRY", "24h"),
		SessionTTL:     sessionTTL,
		RequestTimeout: requestTimeout,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
