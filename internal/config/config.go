package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported backends.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	StorageDB = "db"
	StorageS3 = "s3"
)

const (
	defaultPort           = "3000"
	defaultDBPath         = "app.db"
	defaultMailHost       = "smtp.gmail.com"
	defaultMailPort       = 587
	defaultMaxUploadBytes = 50 << 20 // 50 MB
	defaultOriginPrefix   = "http://localhost:"
	envPrefix             = "FILE_VAULT"
)

// Config is the process-wide configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	Port     string
	LogLevel string
	DB       DBConfig
	JWT      JWTConfig
	Mail     MailConfig
	Storage  StorageConfig
	Files    FilesConfig
	CORS     CORSConfig
}

type DBConfig struct {
	Driver string // sqlite | postgres
	Path   string // sqlite file
	DSN    string // postgres connection string
}

type JWTConfig struct {
	Secret string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type StorageConfig struct {
	Backend string // db | s3
	S3      S3Config
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type FilesConfig struct {
	MaxUploadBytes int64
}

type CORSConfig struct {
	AllowedOriginPrefix string
}

// LoadDotEnv loads .env files into the process environment. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// NewViper returns a viper instance reading configFile, or configs/config.yml when empty.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		return v
	}
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")
	return v
}

// Command-line flags bound into viper by BindFlags.
const (
	FlagPort     = "port"
	FlagLogLevel = "log-level"
)

// BindFlags makes the --port and --log-level flags of fs override config and env.
// Flags missing from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{FlagPort: "port", FlagLogLevel: "log.level"}
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", flag, err)
		}
	}
	return nil
}

// Load reads configuration from v (config file, env, bound flags) and validates it.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			Path:   v.GetString("db.path"),
			DSN:    v.GetString("db.dsn"),
		},
		JWT: JWTConfig{Secret: v.GetString("jwt.secret")},
		Mail: MailConfig{
			Host:     v.GetString("mail.host"),
			Port:     v.GetInt("mail.port"),
			Username: v.GetString("mail.username"),
			Password: v.GetString("mail.password"),
			From:     v.GetString("mail.from"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			S3: S3Config{
				Bucket:    v.GetString("s3.bucket"),
				Region:    v.GetString("s3.region"),
				Endpoint:  v.GetString("s3.endpoint"),
				AccessKey: v.GetString("s3.access_key"),
				SecretKey: v.GetString("s3.secret_key"),
			},
		},
		Files: FilesConfig{MaxUploadBytes: v.GetInt64("files.max_upload_bytes")},
		CORS:  CORSConfig{AllowedOriginPrefix: v.GetString("cors.allowed_origin_prefix")},
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that would make the service insecure or unusable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("jwt.secret (JWT_SECRET) is required"))
	}
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			errs = append(errs, errors.New("db.path is required for sqlite"))
		}
	case DriverPostgres:
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("db.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported db.driver %q", c.DB.Driver))
	}
	switch c.Storage.Backend {
	case StorageDB:
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("s3.bucket is required for the s3 storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage.backend %q", c.Storage.Backend))
	}
	if c.Mail.Username == "" || c.Mail.Password == "" {
		errs = append(errs, errors.New("mail.username (EMAIL) and mail.password (EMAIL_PASSWORD) are required"))
	}
	if c.Files.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("files.max_upload_bytes must be positive"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("mail.host", defaultMailHost)
	v.SetDefault("mail.port", defaultMailPort)
	v.SetDefault("storage.backend", StorageDB)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("files.max_upload_bytes", defaultMaxUploadBytes)
	v.SetDefault("cors.allowed_origin_prefix", defaultOriginPrefix)
}

// bindEnv maps FILE_VAULT_* variables and the legacy names used by existing deployments.
func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	legacy := map[string][]string{
		"port":          {"FILE_VAULT_PORT", "PORT"},
		"jwt.secret":    {"FILE_VAULT_JWT_SECRET", "JWT_SECRET"},
		"mail.username": {"FILE_VAULT_MAIL_USERNAME", "EMAIL"},
		"mail.password": {"FILE_VAULT_MAIL_PASSWORD", "EMAIL_PASSWORD"},
		"db.dsn":        {"FILE_VAULT_DB_DSN", "DATABASE_URL"},
	}
	for key, envs := range legacy {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
