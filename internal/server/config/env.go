package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// envFile is loaded (if present) before reading variables. Values already
// set in the process environment win over the file.
var envFile = ".env"

// parseEnv overlays SURVEYCHAIN_* variables onto config. Unset or empty
// variables leave the current value untouched; durations use
// time.ParseDuration syntax and are ignored when malformed.
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}

	str("SURVEYCHAIN_GRPC_ADDR", &config.EndpointAddrGRPC)
	str("SURVEYCHAIN_DATABASE_DSN", &config.DatabaseDSN)
	str("SURVEYCHAIN_SECRET_KEY", &config.SecretKey)
	dur("SURVEYCHAIN_ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	str("SURVEYCHAIN_ADMIN_EMAIL", &config.AdminEmail)
	str("SURVEYCHAIN_ADMIN_PASSWORD", &config.AdminPassword)
	str("SURVEYCHAIN_S3_ROOT_USER", &config.S3RootUser)
	str("SURVEYCHAIN_S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("SURVEYCHAIN_S3_BUCKET", &config.S3Bucket)
	str("SURVEYCHAIN_S3_REGION", &config.S3Region)
	str("SURVEYCHAIN_S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	dur("SURVEYCHAIN_EXPORT_LINK_TTL", &config.ExportLinkValidityDuration)
}
