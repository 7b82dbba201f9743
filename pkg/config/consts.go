package config

const (
	EnvPrefix = "INVENTAIRE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv = "INVENTAIRE_APP_ENV"
	EnvPort   = "INVENTAIRE_APP_PORT"
	EnvDBDSN  = "INVENTAIRE_DB_DSN"
	EnvDBHost = "INVENTAIRE_DB_HOST"
	EnvDBUser = "INVENTAIRE_DB_USER"
	EnvDBName = "INVENTAIRE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
