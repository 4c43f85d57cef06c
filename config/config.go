package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
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

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type SmtpConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system"`
	Web      WebConfig  `yaml:"web"`
	Database DBConfig   `yaml:"database"`
	Logger   LogConfig  `yaml:"logger"`
	Smtp     SmtpConfig `yaml:"smtp"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "toughstore",
		Location: "Asia/Shanghai",
		Workdir:  "/var/toughstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "toughstore",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/toughstore/toughstore.log",
	},
	Smtp: SmtpConfig{
		Enabled: false,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "no-reply@toughstore.local",
	},
}

func setEnvValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig loads the yaml configuration file and applies
// environment variable overrides, falling back to defaults.
func LoadConfig(cfile string) *AppConfig {
	// parse config file
	cfg := new(AppConfig)
	if cfile == "" {
		cfile = "toughstore.yml"
	}
	if _, err := os.Stat(cfile); err == nil {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	} else {
		defaults := *DefaultAppConfig
		cfg = &defaults
	}

	setEnvValue("TOUGHSTORE_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("TOUGHSTORE_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("TOUGHSTORE_WEB_HOST", &cfg.Web.Host)
	setEnvValue("TOUGHSTORE_WEB_SECRET", &cfg.Web.Secret)
	setEnvIntValue("TOUGHSTORE_WEB_PORT", &cfg.Web.Port)

	setEnvValue("TOUGHSTORE_DB_TYPE", &cfg.Database.Type)
	setEnvValue("TOUGHSTORE_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("TOUGHSTORE_DB_PORT", &cfg.Database.Port)
	setEnvValue("TOUGHSTORE_DB_NAME", &cfg.Database.Name)
	setEnvValue("TOUGHSTORE_DB_USER", &cfg.Database.User)
	setEnvValue("TOUGHSTORE_DB_PWD", &cfg.Database.Passwd)

	setEnvBoolValue("TOUGHSTORE_SMTP_ENABLED", &cfg.Smtp.Enabled)
	setEnvValue("TOUGHSTORE_SMTP_HOST", &cfg.Smtp.Host)
	setEnvIntValue("TOUGHSTORE_SMTP_PORT", &cfg.Smtp.Port)
	setEnvValue("TOUGHSTORE_SMTP_USERNAME", &cfg.Smtp.Username)
	setEnvValue("TOUGHSTORE_SMTP_PASSWORD", &cfg.Smtp.Password)
	setEnvValue("TOUGHSTORE_SMTP_FROM", &cfg.Smtp.From)

	return cfg
}

// InitDirs creates the working directories used by the logger and database.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
}
