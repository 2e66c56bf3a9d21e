package config

import (
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Logger  Logger
	Storage Storage
	Auth    Auth
	Upload  Upload
	Backup  Backup
}

type DB struct {
	Driver      string `env:"DB_DRIVER"`
	DatabaseURI string `env:"DATABASE_URI"`
}

type Server struct {
	RunAddress   string        `env:"RUN_ADDRESS"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`
}

type Logger struct {
	LogLevel string `env:"LOG_LEVEL"`
	LogPath  string `env:"LOG_PATH"`
}

// Storage - каталоги на диске
type Storage struct {
	PublicDir string `env:"PUBLIC_DIR"`
	MediaDir  string `env:"MEDIA_DIR"`
	TempDir   string `env:"TEMP_DIR"`
}

type Auth struct {
	SessionTTL      time.Duration `env:"SESSION_TTL"`
	StrictPasswords bool          `env:"STRICT_PASSWORDS"`
}

type Upload struct {
	MaxBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// Backup - опциональное зеркало архивов в S3
type Backup struct {
	Bucket       string `env:"BACKUP_S3_BUCKET"`
	Region       string `env:"BACKUP_S3_REGION"`
	Endpoint     string `env:"BACKUP_S3_ENDPOINT"`
	Prefix       string `env:"BACKUP_S3_PREFIX"`
	AccessKey    string `env:"BACKUP_S3_ACCESS_KEY"`
	SecretKey    string `env:"BACKUP_S3_SECRET_KEY"`
	AgeRecipient string `env:"BACKUP_AGE_RECIPIENT"`
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// MirrorEnabled сообщает, настроено ли зеркалирование бэкапов
func (b Backup) MirrorEnabled() bool {
	return b.Bucket != ""
}

func setDefaults() {
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("run_address", ":3000")
	viper.SetDefault("read_timeout", "30s")
	viper.SetDefault("write_timeout", "5m")
	viper.SetDefault("db_driver", DriverSQLite)
	viper.SetDefault("database_uri", filepath.Join("data", "journal.db"))
	viper.SetDefault("public_dir", "public")
	viper.SetDefault("media_dir", filepath.Join("public", "media", "journals"))
	viper.SetDefault("temp_dir", "temp")
	viper.SetDefault("session_ttl", "168h")
	viper.SetDefault("strict_passwords", false)
	viper.SetDefault("max_upload_bytes", 25*1024*1024)
}

func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	setDefaults()

	config := Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			Driver:      viper.GetString("db_driver"),
			DatabaseURI: viper.GetString("database_uri"),
		},
		Server: Server{
			RunAddress:   viper.GetString("run_address"),
			ReadTimeout:  viper.GetDuration("read_timeout"),
			WriteTimeout: viper.GetDuration("write_timeout"),
		},
		Logger: Logger{
			LogLevel: viper.GetString("log_level"),
			LogPath:  viper.GetString("log_path"),
		},
		Storage: Storage{
			PublicDir: viper.GetString("public_dir"),
			MediaDir:  viper.GetString("media_dir"),
			TempDir:   viper.GetString("temp_dir"),
		},
		Auth: Auth{
			SessionTTL:      viper.GetDuration("session_ttl"),
			StrictPasswords: viper.GetBool("strict_passwords"),
		},
		Upload: Upload{MaxBytes: viper.GetInt64("max_upload_bytes")},
		Backup: Backup{
			Bucket:       viper.GetString("backup_s3_bucket"),
			Region:       viper.GetString("backup_s3_region"),
			Endpoint:     viper.GetString("backup_s3_endpoint"),
			Prefix:       viper.GetString("backup_s3_prefix"),
			AccessKey:    viper.GetString("backup_s3_access_key"),
			SecretKey:    viper.GetString("backup_s3_secret_key"),
			AgeRecipient: viper.GetString("backup_age_recipient"),
		},
	}

	if config.DB.Driver != DriverSQLite && config.DB.Driver != DriverPostgres {
		log.Fatalf("unsupported DB_DRIVER %q", config.DB.Driver)
	}

	return &config
}
