package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBUsername string `yaml:"db_username"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DisableTLS bool   `yaml:"disable_tls"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	BaseUrl    string `yaml:"base_url"`
	JWTKeyFile string `yaml:"jwt_key_file"`

	Rules Rules `yaml:"rules"`
}

// Rules are the attendance and payroll business thresholds. They are loaded
// once and passed into the repositories at construction so tests can supply
// their own values.
type Rules struct {
	Timezone             string  `yaml:"timezone"`
	LateGraceMinutes     int     `yaml:"late_grace_minutes"`
	NoShowGraceMinutes   int     `yaml:"no_show_grace_minutes"`
	AutoClockOutMinutes  int     `yaml:"auto_clock_out_minutes"`
	LateWarningCount     int     `yaml:"late_warning_count"`
	LatePenaltyFactor    float64 `yaml:"late_penalty_factor"`
	NoShowPenaltyFactor  float64 `yaml:"no_show_penalty_factor"`
	DefaultStoreRadius   float64 `yaml:"default_store_radius"`
	MaxStores            int     `yaml:"max_stores"`
	SweepLockTTLSeconds  int     `yaml:"sweep_lock_ttl_seconds"`
	NoShowLookbackDays   int     `yaml:"no_show_lookback_days"`
	DefaultEmployeePass  string  `yaml:"default_employee_password"`
}

func NewConfig() (*Config, error) {
	var c Config

	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		return nil, err
	}

	if c.DBUsername == "" || c.DBPassword == "" || c.DBHost == "" || c.DBName == "" {
		return nil, errors.New("missing required database configuration")
	}

	c.Rules = c.Rules.withDefaults()

	return &c, nil
}

// DefaultRules returns the production thresholds. Tests use this as a
// baseline and override what they exercise.
func DefaultRules() Rules {
	return Rules{}.withDefaults()
}

func (r Rules) withDefaults() Rules {
	if r.Timezone == "" {
		r.Timezone = "Asia/Amman"
	}
	if r.LateGraceMinutes == 0 {
		r.LateGraceMinutes = 15
	}
	if r.NoShowGraceMinutes == 0 {
		r.NoShowGraceMinutes = 30
	}
	if r.AutoClockOutMinutes == 0 {
		r.AutoClockOutMinutes = 60
	}
	if r.LateWarningCount == 0 {
		r.LateWarningCount = 2
	}
	if r.LatePenaltyFactor == 0 {
		r.LatePenaltyFactor = 0.5
	}
	if r.NoShowPenaltyFactor == 0 {
		r.NoShowPenaltyFactor = 2.0
	}
	if r.DefaultStoreRadius == 0 {
		r.DefaultStoreRadius = 10
	}
	if r.MaxStores == 0 {
		r.MaxStores = 50
	}
	if r.SweepLockTTLSeconds == 0 {
		r.SweepLockTTLSeconds = 300
	}
	if r.NoShowLookbackDays == 0 {
		r.NoShowLookbackDays = 7
	}
	if r.DefaultEmployeePass == "" {
		r.DefaultEmployeePass = "gosta123"
	}
	return r
}

// Location resolves the business timezone. Shift dates and wall-clock times
// are interpreted in this single zone.
func (r Rules) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (r Rules) LateGrace() time.Duration {
	return time.Duration(r.LateGraceMinutes) * time.Minute
}

func (r Rules) NoShowGrace() time.Duration {
	return time.Duration(r.NoShowGraceMinutes) * time.Minute
}

func (r Rules) AutoClockOutGrace() time.Duration {
	return time.Duration(r.AutoClockOutMinutes) * time.Minute
}
