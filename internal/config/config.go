package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AuthConfig struct {
	CodeTTL    time.Duration
	CodeLength int
	// scrypt parameters used for password hashes
	ScryptN      int
	ScryptR      int
	ScryptP      int
	ScryptKeyLen int
	SaltLength   int
	DefaultRole  string
}

type SessionConfig struct {
	Secret        string
	CookieName    string
	CookieSecure  bool
	CookieDomain  string
	TTL           time.Duration
	PruneInterval time.Duration
}

type SMSConfig struct {
	Provider       string
	BaseURL        string
	UserCode       string
	Password       string
	MsgHeader      string
	SuccessPrefix  string
	Timeout        time.Duration
	StrictDelivery bool
	MessageFormat  string
}

type RateLimitConfig struct {
	Enabled          bool
	MaxLoginFailures int
	MaxCodeFailures  int
	Window           time.Duration
}

type QRConfig struct {
	CodeTTL   time.Duration
	ImageSize int
	KeyPrefix string
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	Location       string
}

// BindEnv maps the environment variables onto viper keys and registers defaults.
func BindEnv() {
	bindings := map[string]string{
		"database.host":     "DATABASE_HOST",
		"database.port":     "DATABASE_PORT",
		"database.user":     "DATABASE_USER",
		"database.password": "DATABASE_PASSWORD",
		"database.name":     "DATABASE_NAME",
		"database.ssl_mode": "DATABASE_SSL_MODE",

		"redis.host":     "REDIS_HOST",
		"redis.port":     "REDIS_PORT",
		"redis.password": "REDIS_PASSWORD",
		"redis.db":       "REDIS_DB",

		"auth.code_ttl":       "AUTH_CODE_TTL",
		"auth.default_role":   "AUTH_DEFAULT_ROLE",
		"auth.code_length":    "AUTH_CODE_LENGTH",
		"scrypt.n":            "SCRYPT_N",
		"scrypt.r":            "SCRYPT_R",
		"scrypt.p":            "SCRYPT_P",
		"scrypt.key_length":   "SCRYPT_KEY_LENGTH",
		"scrypt.salt_length":  "SCRYPT_SALT_LENGTH",
		"session.secret":      "SESSION_SECRET",
		"session.cookie_name": "SESSION_COOKIE_NAME",
		"session.secure":      "SESSION_COOKIE_SECURE",
		"session.domain":      "SESSION_COOKIE_DOMAIN",
		"session.ttl":         "SESSION_TTL",
		"session.prune":       "SESSION_PRUNE_INTERVAL",

		"sms.provider":        "SMS_PROVIDER",
		"sms.base_url":        "NETGSM_BASE_URL",
		"sms.usercode":        "NETGSM_USERCODE",
		"sms.password":        "NETGSM_PASSWORD",
		"sms.msgheader":       "NETGSM_MSGHEADER",
		"sms.success_prefix":  "NETGSM_SUCCESS_PREFIX",
		"sms.timeout":         "SMS_TIMEOUT",
		"sms.strict_delivery": "SMS_STRICT_DELIVERY",
		"sms.message_format":  "SMS_MESSAGE_FORMAT",

		"ratelimit.enabled":            "RATELIMIT_ENABLED",
		"ratelimit.max_login_failures": "RATELIMIT_MAX_LOGIN_FAILURES",
		"ratelimit.max_code_failures":  "RATELIMIT_MAX_CODE_FAILURES",
		"ratelimit.window":             "RATELIMIT_WINDOW",

		"server.port":            "PORT",
		"server.allowed_origins": "CORS_ALLOWED_ORIGINS",
		"server.location":        "APP_TIMEZONE",
	}
	for key, env := range bindings {
		viper.BindEnv(key, env)
	}

	viper.SetDefault("auth.code_ttl", 5*time.Minute)
	viper.SetDefault("auth.default_role", "branch_admin")
	viper.SetDefault("auth.code_length", 6)
	viper.SetDefault("scrypt.n", 16384)
	viper.SetDefault("scrypt.r", 8)
	viper.SetDefault("scrypt.p", 1)
	viper.SetDefault("scrypt.key_length", 64)
	viper.SetDefault("scrypt.salt_length", 16)

	viper.SetDefault("session.cookie_name", "sid")
	viper.SetDefault("session.secure", false)
	viper.SetDefault("session.ttl", 24*time.Hour)
	viper.SetDefault("session.prune", 15*time.Minute)

	viper.SetDefault("sms.provider", "log")
	viper.SetDefault("sms.base_url", "https://api.netgsm.com.tr/sms/send/get")
	viper.SetDefault("sms.success_prefix", "00")
	viper.SetDefault("sms.timeout", time.Duration(0))
	viper.SetDefault("sms.strict_delivery", false)
	viper.SetDefault("sms.message_format", "Personel Takip doğrulama kodunuz: %s")

	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.max_login_failures", 10)
	viper.SetDefault("ratelimit.max_code_failures", 5)
	viper.SetDefault("ratelimit.window", 15*time.Minute)

	viper.SetDefault("server.port", getEnv("PORT", "5000"))
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:5000", "http://localhost:5173"})
	viper.SetDefault("server.location", "Europe/Istanbul")
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		CodeTTL:      viper.GetDuration("auth.code_ttl"),
		CodeLength:   viper.GetInt("auth.code_length"),
		ScryptN:      viper.GetInt("scrypt.n"),
		ScryptR:      viper.GetInt("scrypt.r"),
		ScryptP:      viper.GetInt("scrypt.p"),
		ScryptKeyLen: viper.GetInt("scrypt.key_length"),
		SaltLength:   viper.GetInt("scrypt.salt_length"),
		DefaultRole:  viper.GetString("auth.default_role"),
	}
}

func LoadSessionConfig() *SessionConfig {
	return &SessionConfig{
		Secret:        viper.GetString("session.secret"),
		CookieName:    viper.GetString("session.cookie_name"),
		CookieSecure:  viper.GetBool("session.secure"),
		CookieDomain:  viper.GetString("session.domain"),
		TTL:           viper.GetDuration("session.ttl"),
		PruneInterval: viper.GetDuration("session.prune"),
	}
}

func LoadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Provider:       viper.GetString("sms.provider"),
		BaseURL:        viper.GetString("sms.base_url"),
		UserCode:       viper.GetString("sms.usercode"),
		Password:       viper.GetString("sms.password"),
		MsgHeader:      viper.GetString("sms.msgheader"),
		SuccessPrefix:  viper.GetString("sms.success_prefix"),
		Timeout:        viper.GetDuration("sms.timeout"),
		StrictDelivery: viper.GetBool("sms.strict_delivery"),
		MessageFormat:  viper.GetString("sms.message_format"),
	}
}

func LoadRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:          viper.GetBool("ratelimit.enabled"),
		MaxLoginFailures: viper.GetInt("ratelimit.max_login_failures"),
		MaxCodeFailures:  viper.GetInt("ratelimit.max_code_failures"),
		Window:           viper.GetDuration("ratelimit.window"),
	}
}

func LoadQRConfig() *QRConfig {
	return &QRConfig{
		CodeTTL:   getEnvAsDuration("QR_CODE_TTL", 5*time.Minute),
		ImageSize: getEnvAsInt("QR_IMAGE_SIZE", 256),
		KeyPrefix: getEnv("QR_KEY_PREFIX", "checkin"),
	}
}

func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:           viper.GetString("server.port"),
		AllowedOrigins: splitList(viper.GetStringSlice("server.allowed_origins")),
		Location:       viper.GetString("server.location"),
	}
}

// LoadLocation returns the business time zone, falling back to a fixed UTC+3
// zone when the tz database is missing from the host.
func (c *ServerConfig) LoadLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}

// splitList flattens comma separated entries, as given in CORS_ALLOWED_ORIGINS.
func splitList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
