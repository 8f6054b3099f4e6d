package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL" default:"sqlite://invest.db"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
	// ResetTokenTTL bounds how long a password reset link stays usable.
	ResetTokenTTL time.Duration `envconfig:"RESET_TOKEN_TTL" default:"1h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"invest:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[invest]"`
	// File enables a rotating log file next to stdout when set.
	File       string `envconfig:"FILE" default:""`
	MaxSizeMB  int    `envconfig:"MAX_SIZE_MB" default:"50"`
	MaxBackups int    `envconfig:"MAX_BACKUPS" default:"5"`
	MaxAgeDays int    `envconfig:"MAX_AGE_DAYS" default:"28"`
}

type Server struct {
	Scheme      string   `envconfig:"SCHEME" default:"http"`
	Host        string   `envconfig:"HOST" default:"localhost"`
	Port        int      `envconfig:"PORT" default:"3000"`
	CorsOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	// PublicURL is used to build links sent by email.
	PublicURL string `envconfig:"PUBLIC_URL" default:"http://localhost:5173"`
}

//revive:disable
type S3 struct {
	Bucket    string `envconfig:"BUCKET"`
	Region    string `envconfig:"REGION" default:"ap-southeast-1"`
	AccessKey string `envconfig:"ACCESS_KEY"`
	SecretKey string `envconfig:"SECRET_KEY"`
	BaseURL   string `envconfig:"BASE_URL"`
}

//revive:enable

type Upload struct {
	Driver       string   `envconfig:"DRIVER" default:"local"`
	Dir          string   `envconfig:"DIR" default:"./uploads"`
	MaxSize      int64    `envconfig:"MAX_SIZE" default:"5242880"`
	AllowedTypes []string `envconfig:"ALLOWED_TYPES" default:".jpg,.jpeg,.png,.gif,.webp,.pdf"`
	S3           *S3      `envconfig:"S3"`
}

type SMTP struct {
	Host     string `envconfig:"HOST" default:""`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	From     string `envconfig:"FROM" default:"no-reply@invest.local"`
}

type Captcha struct {
	Secret  string        `envconfig:"SECRET" default:""`
	URL     string        `envconfig:"URL" default:"https://www.google.com/recaptcha/api/siteverify"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type PriceFeed struct {
	URL      string        `envconfig:"URL" default:"https://api.coingecko.com/api/v3/simple/price"`
	Coins    []string      `envconfig:"COINS" default:"bitcoin,ethereum,tether"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"1m"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type Kafka struct {
	Brokers     string `envconfig:"BROKERS" default:""`
	GroupID     string `envconfig:"GROUP_ID" default:"invest"`
	TopicPrefix string `envconfig:"TOPIC_PREFIX" default:"invest.events"`
}

type Referral struct {
	Bonus     float64 `envconfig:"BONUS" default:"50"`
	Threshold int     `envconfig:"THRESHOLD" default:"10"`
}

type Scheduler struct {
	Enabled      bool   `envconfig:"ENABLED" default:"true"`
	MaturitySpec string `envconfig:"MATURITY_SPEC" default:"@every 15m"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Upload    *Upload    `envconfig:"UPLOAD"`
	SMTP      *SMTP      `envconfig:"SMTP"`
	Captcha   *Captcha   `envconfig:"CAPTCHA"`
	PriceFeed *PriceFeed `envconfig:"PRICE_FEED"`
	Kafka     *Kafka     `envconfig:"KAFKA"`
	Referral  *Referral  `envconfig:"REFERRAL"`
	Scheduler *Scheduler `envconfig:"SCHEDULER"`
}

// IsDevelopment reports whether error details may be exposed to clients.
func (a *App) IsDevelopment() bool {
	return a != nil && a.Env == "development"
}
