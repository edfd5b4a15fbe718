package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/mynt/inventory-tracker/internal/domain"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env
// y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Shopify ShopifyConfig
	Alert   AlertConfig
	Secrets SecretsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShopifyConfig credenciales de la fuente de órdenes.
type ShopifyConfig struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	// TagFetchConcurrency es el tope global de consultas simultáneas de tags.
	TagFetchConcurrency int64
}

// AlertConfig transporte y destinatario del aviso de bajo stock.
type AlertConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	From         string
	To           string
	AppURL       string
}

// SecretsConfig secretos compartidos de las rutas de operador y del cron.
type SecretsConfig struct {
	ScanSecret string
	CronSecret string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde
// archivo .env / config.env). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventory-tracker"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventory_tracker"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Shopify: ShopifyConfig{
			StoreDomain:         getString(v, "SHOPIFY_STORE_DOMAIN", ""),
			AccessToken:         getString(v, "SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:          getString(v, "SHOPIFY_API_VERSION", "2024-10"),
			TagFetchConcurrency: int64(getInt(v, "SHOPIFY_TAG_CONCURRENCY", 3)),
		},
		Alert: AlertConfig{
			SMTPHost:     getString(v, "SMTP_HOST", ""),
			SMTPPort:     getInt(v, "SMTP_PORT", 587),
			SMTPUser:     getString(v, "SMTP_USER", ""),
			SMTPPassword: getString(v, "SMTP_PASSWORD", ""),
			From:         getString(v, "ALERT_FROM", ""),
			To:           getString(v, "ALERT_TO", ""),
			AppURL:       getString(v, "APP_URL", ""),
		},
		Secrets: SecretsConfig{
			ScanSecret: getString(v, "SCAN_SECRET", ""),
			CronSecret: getString(v, "CRON_SECRET", ""),
		},
	}

	return cfg, nil
}

// Validate falla temprano si faltan credenciales o direcciones externas:
// ningún side effect antes de tener la configuración completa.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SHOPIFY_STORE_DOMAIN", c.Shopify.StoreDomain},
		{"SHOPIFY_ACCESS_TOKEN", c.Shopify.AccessToken},
		{"SMTP_HOST", c.Alert.SMTPHost},
		{"ALERT_FROM", c.Alert.From},
		{"ALERT_TO", c.Alert.To},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingConfig, r.name)
		}
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
