package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// SysConfig holds process-wide settings
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

type JwtConfig struct {
	Secret string `yaml:"secret"`
	// AccessExpireMinutes is the lifetime of issued access tokens
	AccessExpireMinutes int `yaml:"access_expire_minutes"`
}

type KafkaConfig struct {
	// Brokers empty disables event publishing
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig   `yaml:"system"`
	Web      WebConfig   `yaml:"web"`
	Database DBConfig    `yaml:"database"`
	Jwt      JwtConfig   `yaml:"jwt"`
	Kafka    KafkaConfig `yaml:"kafka"`
	Logger   LogConfig   `yaml:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "QKart",
		Location: "Asia/Shanghai",
		Workdir:  "/var/qkart",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 8188,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "qkart_v1",
		User:     "postgres",
		Passwd:   "qkartpwd",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Jwt: JwtConfig{
		Secret:              "9b6de5cc-qkart-1393-dev-secret",
		AccessExpireMinutes: 30,
	},
	Kafka: KafkaConfig{
		Brokers: nil,
		Topic:   "qkart.orders",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/qkart/qkart.log",
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := cast.ToInt64E(evalue)
	if err == nil {
		f(p)
	}
}

// LoadConfig loads the YAML configuration file and applies
// QKART_ environment overrides on top of it
func LoadConfig(cfile string) *AppConfig {
	// Configuration priority: environment variables > configuration file > defaults
	if cfile == "" {
		cfile = "qkart.yml"
	}
	cfg := new(AppConfig)
	if FileExists(cfile) {
		data := Must(os.ReadFile(cfile))
		MustErr(yaml.Unmarshal(data, cfg))
	} else {
		def := *DefaultAppConfig
		cfg = &def
	}

	setEnvValue("QKART_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("QKART_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("QKART_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("QKART_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("QKART_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("QKART_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("QKART_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("QKART_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("QKART_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("QKART_JWT_SECRET", func(v string) { cfg.Jwt.Secret = v })
	setEnvInt64Value("QKART_JWT_ACCESS_EXPIRE_MINUTES", func(v int64) { cfg.Jwt.AccessExpireMinutes = int(v) })
	setEnvValue("QKART_KAFKA_BROKERS", func(v string) { cfg.Kafka.Brokers = strings.Split(v, ",") })
	setEnvValue("QKART_KAFKA_TOPIC", func(v string) { cfg.Kafka.Topic = v })
	setEnvValue("QKART_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return cfg
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func Must[T any](v T, err error) T {
	if err != nil {
		panic(errors.WithStack(err))
	}
	return v
}

func MustErr(err error) {
	if err != nil {
		panic(errors.WithStack(err))
	}
}
