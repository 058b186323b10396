package config

import "os"

const (
	EnvDatabaseDriver = "CREDKEEPER_DB_DRIVER"
	EnvDatabaseDSN    = "CREDKEEPER_DB_DSN"
	EnvHashAlgorithm  = "CREDKEEPER_HASH_ALGORITHM"
	EnvLogLevel       = "CREDKEEPER_LOG_LEVEL"
	EnvLogFormat      = "CREDKEEPER_LOG_FORMAT"
)

func parseEnv(config *Config) {
	trySetFromEnv(EnvDatabaseDriver, &config.DatabaseDriver)
	trySetFromEnv(EnvDatabaseDSN, &config.DatabaseDSN)
	trySetFromEnv(EnvHashAlgorithm, &config.HashAlgorithm)
	trySetFromEnv(EnvLogLevel, &config.LogLevel)
	trySetFromEnv(EnvLogFormat, &config.LogFormat)
}

func trySetFromEnv(envName string, val *string) {
	if envVal, found := os.LookupEnv(envName); found {
		*val = envVal
	}
}
