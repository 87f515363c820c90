package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	DataSourceMock      = "mock"
	DataSourcePortfolio = "portfolio"
)

type Config struct {
	App struct {
		Port      string `mapstructure:"port"`
		Env       string `mapstructure:"env"`
		Name      string `mapstructure:"name"`
		// base for links in the activity feed, e.g. https://portfolio.example.com
		PublicURL string `mapstructure:"public_url"`
	} `mapstructure:"app"`
	Storage struct {
		Driver string `mapstructure:"driver"`
		Seed   bool   `mapstructure:"seed"`
	} `mapstructure:"storage"`
	DB struct {
		DSN        string `mapstructure:"dsn"`
		Migrations string `mapstructure:"migrations"`
	} `mapstructure:"db"`
	Redis struct {
		Addr       string        `mapstructure:"addr"`
		Password   string        `mapstructure:"password"`
		PreviewTTL time.Duration `mapstructure:"preview_ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers       []string `mapstructure:"brokers"`
		ActivityTopic string   `mapstructure:"activity_topic"`
		GroupID       string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Chrome struct {
		Path      string        `mapstructure:"path"`
		Timeout   time.Duration `mapstructure:"timeout"`
		NoSandbox bool          `mapstructure:"no_sandbox"`
	} `mapstructure:"chrome"`
	CV struct {
		PreviewDelay time.Duration `mapstructure:"preview_delay"`
		DataSource   string        `mapstructure:"data_source"`
		Filename     string        `mapstructure:"filename"`
	} `mapstructure:"cv"`
	Backup struct {
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"backup"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

// LoadConfig reads config.yaml from path (if present), .env and the process
// environment. Every key has a default so an empty environment is valid.
func LoadConfig(path string) (cfg Config, err error) {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.public_url", "APP_PUBLIC_URL")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.seed", "STORAGE_SEED")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.migrations", "DB_MIGRATIONS")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.preview_ttl", "REDIS_PREVIEW_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.activity_topic", "KAFKA_ACTIVITY_TOPIC")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")

	v.BindEnv("chrome.path", "CHROME_PATH")
	v.BindEnv("chrome.timeout", "CHROME_TIMEOUT")
	v.BindEnv("cv.preview_delay", "CV_PREVIEW_DELAY")
	v.BindEnv("cv.data_source", "CV_DATA_SOURCE")
	v.BindEnv("backup.interval", "BACKUP_INTERVAL")
	v.BindEnv("jaeger.otlp_endpoint", "JAEGER_OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.name", "careerone-portfolio")
	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.seed", true)
	v.SetDefault("db.migrations", "file://migrations")
	v.SetDefault("redis.preview_ttl", 10*time.Minute)
	v.SetDefault("kafka.activity_topic", "portfolio.activity")
	v.SetDefault("kafka.group_id", "activity-recorder-group")
	v.SetDefault("chrome.timeout", 30*time.Second)
	v.SetDefault("chrome.no_sandbox", true)
	v.SetDefault("cv.preview_delay", time.Second)
	v.SetDefault("cv.data_source", DataSourceMock)
	v.SetDefault("cv.filename", "Careerone_CV.pdf")
}
