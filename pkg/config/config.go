package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del cliente (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	Remote   RemoteConfig
	Session  SessionConfig
	HTTP     HTTPConfig
	Cache    CacheConfig
	Currency CurrencyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// RemoteConfig configuración de la API remota de pedidos (fuente de verdad).
type RemoteConfig struct {
	BaseURL        string
	TimeoutSeconds int
	RPS            int // peticiones por segundo permitidas hacia la API
	Burst          int
}

// Timeout devuelve el timeout por petición como duración.
func (c RemoteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig token de sesión opcional a resolver al arrancar.
// Si TokenSecret está vacío la firma no se verifica localmente (la API remota es quien decide).
type SessionConfig struct {
	Token       string
	TokenSecret string
}

// HTTPConfig configuración del gateway local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig ventanas de frescura y reintentos de la caché de recursos remotos.
type CacheConfig struct {
	StaleSeconds         int
	TrackingStaleSeconds int
	FetchRetries         int
	FetchTimeoutSeconds  int
}

// StaleAfter ventana de frescura por defecto.
func (c CacheConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleSeconds) * time.Second
}

// TrackingStaleAfter ventana de frescura para el seguimiento de pedidos.
func (c CacheConfig) TrackingStaleAfter() time.Duration {
	return time.Duration(c.TrackingStaleSeconds) * time.Second
}

// FetchTimeout timeout de cada fetch desacoplado del llamador.
func (c CacheConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CurrencyConfig moneda base del servidor y archivo de preferencias locales.
type CurrencyConfig struct {
	Base            string
	PreferencesPath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, REMOTE_API_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración desde una instancia de Viper ya poblada (útil en tests).
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "corporate-meals"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Remote: RemoteConfig{
			BaseURL:        strings.TrimRight(getString(v, "REMOTE_API_URL", "http://localhost:8000"), "/"),
			TimeoutSeconds: getInt(v, "REMOTE_API_TIMEOUT_SECONDS", 15),
			RPS:            getInt(v, "REMOTE_API_RPS", 20),
			Burst:          getInt(v, "REMOTE_API_BURST", 40),
		},
		Session: SessionConfig{
			Token:       getString(v, "SESSION_TOKEN", ""),
			TokenSecret: getString(v, "SESSION_TOKEN_SECRET", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Cache: CacheConfig{
			StaleSeconds:         getInt(v, "CACHE_STALE_SECONDS", 60),
			TrackingStaleSeconds: getInt(v, "CACHE_TRACKING_STALE_SECONDS", 15),
			FetchRetries:         getInt(v, "CACHE_FETCH_RETRIES", 1),
			FetchTimeoutSeconds:  getInt(v, "CACHE_FETCH_TIMEOUT_SECONDS", 20),
		},
		Currency: CurrencyConfig{
			Base:            strings.ToUpper(getString(v, "CURRENCY_BASE", "USD")),
			PreferencesPath: getString(v, "PREFERENCES_PATH", "./preferences.yaml"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("config: REMOTE_API_URL vacío")
	}
	if c.Remote.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: REMOTE_API_TIMEOUT_SECONDS debe ser positivo")
	}
	if c.Cache.FetchRetries < 0 || c.Cache.FetchRetries > 1 {
		// Como máximo un reintento automático; el resto depende de una nueva petición explícita.
		return fmt.Errorf("config: CACHE_FETCH_RETRIES debe ser 0 o 1")
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
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
