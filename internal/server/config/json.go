package config

import (
	"encoding/json"
	"os"

	"github.com/ansuman15/salon-software-sub002/internal/flagx"
	"github.com/ansuman15/salon-software-sub002/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept "12h" strings or integer nanoseconds (timex.Duration);
// booleans and numbers are pointers so absent keys leave values untouched.
type JsonConfig struct {
	EndpointAddrHTTP        string          `json:"endpoint_addr_http"`
	DatabaseDSN             string          `json:"database_dsn"`
	SecretKey               string          `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	CookieSecure            *bool           `json:"cookie_secure"`
	TrustedProxies          []string        `json:"trusted_proxies"`
	LogLevel                string          `json:"log_level"`
	AdminUsername           string          `json:"admin_username"`
	AdminPasswordHash       string          `json:"admin_password_hash"`
	LoginRateRPS            *float64        `json:"login_rate_rps"`
	LoginRateBurst          *int            `json:"login_rate_burst"`
	RedisAddr               string          `json:"redis_addr"`
	RedisPassword           string          `json:"redis_password"`
	S3RootUser              string          `json:"s3_root_user"`
	S3RootPassword          string          `json:"s3_root_password"`
	S3Bucket                string          `json:"s3_bucket"`
	S3Region                string          `json:"s3_region"`
	S3BaseEndpoint          string          `json:"s3_base_endpoint"`
	PaymentGatewayURL       string          `json:"payment_gateway_url"`
	PaymentKeyID            string          `json:"payment_key_id"`
	PaymentKeySecret        string          `json:"payment_key_secret"`
	PaymentWebhookSecret    string          `json:"payment_webhook_secret"`
	PlanMonthlyPrice        string          `json:"plan_monthly_price"`
	PlanYearlyPrice         string          `json:"plan_yearly_price"`
	RevenueCronSpec         string          `json:"revenue_cron_spec"`
	AttendanceLockCronSpec  string          `json:"attendance_lock_cron_spec"`
	Timezone                string          `json:"timezone"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config into config. Without the flag nothing happens. An unreadable file
// or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.TrustedProxies != nil {
		config.TrustedProxies = c.TrustedProxies
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.AdminUsername, c.AdminUsername)
	setString(&config.AdminPasswordHash, c.AdminPasswordHash)
	if c.LoginRateRPS != nil {
		config.LoginRateRPS = *c.LoginRateRPS
	}
	if c.LoginRateBurst != nil {
		config.LoginRateBurst = *c.LoginRateBurst
	}
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.PaymentGatewayURL, c.PaymentGatewayURL)
	setString(&config.PaymentKeyID, c.PaymentKeyID)
	setString(&config.PaymentKeySecret, c.PaymentKeySecret)
	setString(&config.PaymentWebhookSecret, c.PaymentWebhookSecret)
	setString(&config.PlanMonthlyPrice, c.PlanMonthlyPrice)
	setString(&config.PlanYearlyPrice, c.PlanYearlyPrice)
	setString(&config.RevenueCronSpec, c.RevenueCronSpec)
	setString(&config.AttendanceLockCronSpec, c.AttendanceLockCronSpec)
	setString(&config.Timezone, c.Timezone)
}
