package config

const (
	EnvPrefix = "ORDA"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	NegativeDeltaAdd    = "add"
	NegativeDeltaRemove = "remove"

	StorageDriverSQLite = "sqlite"
	StorageDriverRedis  = "redis"
)

// Env variable names used by tests and tooling.
const (
	EnvAppEnv            = "ORDA_APP_ENV"
	EnvAPIBaseURL        = "ORDA_API_BASE_URL"
	EnvExemptCollections = "ORDA_PRICING_EXEMPT_COLLECTIONS"
	EnvNegativeDeltaMode = "ORDA_SYNC_NEGATIVE_DELTA_MODE"
	EnvStorageDriver     = "ORDA_STORAGE_DRIVER"
	EnvSQLitePath        = "ORDA_STORAGE_SQLITE_PATH"
)
