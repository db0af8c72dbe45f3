package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the environment-variable DTO. Only variables that are
// actually set override values already in Config.
type envConfig struct {
	EndpointAddr                 *string        `env:"EDUCAGESTOR_ADDR"`
	DatabaseDSN                  *string        `env:"EDUCAGESTOR_DATABASE_DSN"`
	SecretKey                    *string        `env:"EDUCAGESTOR_SECRET_KEY"`
	AccessTokenValidityDuration  *time.Duration `env:"EDUCAGESTOR_ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration *time.Duration `env:"EDUCAGESTOR_REFRESH_TOKEN_TTL"`
	LoginRateLimit               *int           `env:"EDUCAGESTOR_LOGIN_RATE_LIMIT"`
	LoginRateWindow              *time.Duration `env:"EDUCAGESTOR_LOGIN_RATE_WINDOW"`
	RedisAddr                    *string        `env:"EDUCAGESTOR_REDIS_ADDR"`
	RedisPassword                *string        `env:"EDUCAGESTOR_REDIS_PASSWORD"`
	RedisDB                      *int           `env:"EDUCAGESTOR_REDIS_DB"`
	S3RootUser                   *string        `env:"EDUCAGESTOR_S3_ROOT_USER"`
	S3RootPassword               *string        `env:"EDUCAGESTOR_S3_ROOT_PASSWORD"`
	S3Bucket                     *string        `env:"EDUCAGESTOR_S3_BUCKET"`
	S3Region                     *string        `env:"EDUCAGESTOR_S3_REGION"`
	S3BaseEndpoint               *string        `env:"EDUCAGESTOR_S3_BASE_ENDPOINT"`
}

// parseEnv overlays environment variables onto Config. Unset variables
// leave the current value in place. Malformed values panic, mirroring the
// JSON loader.
func parseEnv(config *Config) {
	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = *c.AccessTokenValidityDuration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = *c.RefreshTokenValidityDuration
	}
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	if c.LoginRateWindow != nil {
		config.LoginRateWindow = *c.LoginRateWindow
	}
	if c.RedisAddr != nil {
		config.RedisAddr = *c.RedisAddr
	}
	if c.RedisPassword != nil {
		config.RedisPassword = *c.RedisPassword
	}
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.S3RootUser != nil {
		config.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		config.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}
}
