package constants

const (
	// Environment variables
	EnvConnection  = "DAYONE_DB_CONNECTION"
	EnvRedisPass   = "REDIS_PASSWORD"
	EnvDotenvFile  = "DAYONE_ENV_FILE"
	DefaultEnvFile = ".env"

	// Postgres
	PostgresSchema = AppName

	// File backend permissions
	DirPerm  = 0700
	FilePerm = 0600
)

// Keyring entries, stored under service AppName
const (
	KeyringUserConnection = DefaultKeyringUser
	KeyringUserRedisPass  = "redis-password"
)
