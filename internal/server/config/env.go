package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/flagx"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig maps environment variables onto config fields. Non-string
// settings are read as strings so an unset variable is told apart from a
// zero value.
type EnvConfig struct {
	EndpointAddrHTTP        string `env:"SALON_HTTP_ADDR"`
	DatabaseDSN             string `env:"DATABASE_URL"`
	SecretKey               string `env:"SESSION_SECRET"`
	SessionValidityDuration string `env:"SESSION_TTL"`
	CookieSecure            string `env:"COOKIE_SECURE"`
	TrustedProxies          string `env:"TRUSTED_PROXIES"`
	LogLevel                string `env:"LOG_LEVEL"`
	AdminUsername           string `env:"ADMIN_USERNAME"`
	AdminPasswordHash       string `env:"ADMIN_PASSWORD_HASH"`
	LoginRateRPS            string `env:"LOGIN_RATE_RPS"`
	LoginRateBurst          string `env:"LOGIN_RATE_BURST"`
	RedisAddr               string `env:"REDIS_ADDR"`
	RedisPassword           string `env:"REDIS_PASSWORD"`
	S3RootUser              string `env:"S3_ROOT_USER"`
	S3RootPassword          string `env:"S3_ROOT_PASSWORD"`
	S3Bucket                string `env:"S3_BUCKET"`
	S3Region                string `env:"S3_REGION"`
	S3BaseEndpoint          string `env:"S3_BASE_ENDPOINT"`
	PaymentGatewayURL       string `env:"PAYMENT_GATEWAY_URL"`
	PaymentKeyID            string `env:"PAYMENT_KEY_ID"`
	PaymentKeySecret        string `env:"PAYMENT_KEY_SECRET"`
	PaymentWebhookSecret    string `env:"PAYMENT_WEBHOOK_SECRET"`
	PlanMonthlyPrice        string `env:"PLAN_MONTHLY_PRICE"`
	PlanYearlyPrice         string `env:"PLAN_YEARLY_PRICE"`
	RevenueCronSpec         string `env:"REVENUE_CRON"`
	AttendanceLockCronSpec  string `env:"ATTENDANCE_LOCK_CRON"`
	Timezone                string `env:"SALON_TZ"`
}

// parseEnv loads an optional dotenv file into the process environment and
// overlays every variable that is set onto config.
//
// The dotenv path comes from -n/-envfile; without it ".env" in the working
// directory is tried and silently skipped when absent. Variables already in
// the environment win over the file. An explicit file that cannot be loaded,
// or a malformed variable, panics like the JSON loader does.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	e := &EnvConfig{}
	if err := envdecode.Decode(e); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, e.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	if e.SessionValidityDuration != "" {
		d, err := time.ParseDuration(e.SessionValidityDuration)
		if err != nil {
			panic(err)
		}
		config.SessionValidityDuration = d
	}
	if e.CookieSecure != "" {
		b, err := strconv.ParseBool(e.CookieSecure)
		if err != nil {
			panic(err)
		}
		config.CookieSecure = b
	}
	if e.TrustedProxies != "" {
		config.TrustedProxies = splitList(e.TrustedProxies)
	}
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.AdminUsername, e.AdminUsername)
	setString(&config.AdminPasswordHash, e.AdminPasswordHash)
	if e.LoginRateRPS != "" {
		f, err := strconv.ParseFloat(e.LoginRateRPS, 64)
		if err != nil {
			panic(err)
		}
		config.LoginRateRPS = f
	}
	if e.LoginRateBurst != "" {
		n, err := strconv.Atoi(e.LoginRateBurst)
		if err != nil {
			panic(err)
		}
		config.LoginRateBurst = n
	}
	setString(&config.RedisAddr, e.RedisAddr)
	setString(&config.RedisPassword, e.RedisPassword)
	setString(&config.S3RootUser, e.S3RootUser)
	setString(&config.S3RootPassword, e.S3RootPassword)
	setString(&config.S3Bucket, e.S3Bucket)
	setString(&config.S3Region, e.S3Region)
	setString(&config.S3BaseEndpoint, e.S3BaseEndpoint)
	setString(&config.PaymentGatewayURL, e.PaymentGatewayURL)
	setString(&config.PaymentKeyID, e.PaymentKeyID)
	setString(&config.PaymentKeySecret, e.PaymentKeySecret)
	setString(&config.PaymentWebhookSecret, e.PaymentWebhookSecret)
	setString(&config.PlanMonthlyPrice, e.PlanMonthlyPrice)
	setString(&config.PlanYearlyPrice, e.PlanYearlyPrice)
	setString(&config.RevenueCronSpec, e.RevenueCronSpec)
	setString(&config.AttendanceLockCronSpec, e.AttendanceLockCronSpec)
	setString(&config.Timezone, e.Timezone)
}

// splitList splits a comma-separated variable, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
