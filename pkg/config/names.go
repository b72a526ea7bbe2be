package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "AQUASUR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "AQUASUR_DB_DSN"
	EnvDBHost = "AQUASUR_DB_HOST"
	EnvDBUser = "AQUASUR_DB_USER"
	EnvDBName = "AQUASUR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
