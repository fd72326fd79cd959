package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type SmtpConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
}

// GatewayConfig points at the external payment gateway used to verify
// transaction references. Verification is skipped when BaseURL is empty.
type GatewayConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	ApiKey  string `yaml:"api_key" json:"api_key"`
	Timeout int    `yaml:"timeout" json:"timeout"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Smtp     SmtpConfig    `yaml:"smtp" json:"smtp"`
	Gateway  GatewayConfig `yaml:"gateway" json:"gateway"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "hotelops",
		Location: "Africa/Lagos",
		Workdir:  "/var/hotelops",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-0731-1203-xxtt-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "hotelops",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
	},
	Smtp: SmtpConfig{
		Host: "smtp.example.org",
		Port: 587,
		From: "no-reply@example.org",
	},
	Gateway: GatewayConfig{
		Timeout: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/hotelops/hotelops.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToInt(evalue)
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToBool(evalue)
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("HOTELOPS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("HOTELOPS_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("HOTELOPS_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("HOTELOPS_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("HOTELOPS_WEB_PORT", &cfg.Web.Port)
	setEnvValue("HOTELOPS_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("HOTELOPS_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("HOTELOPS_DB_PORT", &cfg.Database.Port)
	setEnvValue("HOTELOPS_DB_NAME", &cfg.Database.Name)
	setEnvValue("HOTELOPS_DB_USER", &cfg.Database.User)
	setEnvValue("HOTELOPS_DB_PWD", &cfg.Database.Passwd)

	setEnvValue("HOTELOPS_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("HOTELOPS_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("HOTELOPS_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("HOTELOPS_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("HOTELOPS_SMTP_FROM", &cfg.Smtp.From)

	setEnvValue("HOTELOPS_GATEWAY_BASEURL", &cfg.Gateway.BaseURL)
	setEnvValue("HOTELOPS_GATEWAY_APIKEY", &cfg.Gateway.ApiKey)

	setEnvValue("HOTELOPS_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("HOTELOPS_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("HOTELOPS_LOGGER_FILENAME", &cfg.Logger.Filename)

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "hotelops.log")
	}
	return cfg
}
