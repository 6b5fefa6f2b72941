package config

type CatalogBackend string

const (
	CatalogJSON     CatalogBackend = "json"
	CatalogPostgres CatalogBackend = "postgres"
)

type LockBackend string

const (
	LockLocal LockBackend = "local"
	LockRedis LockBackend = "redis"
)

type TraceExporter string

const (
	TraceNone   TraceExporter = "none"
	TraceStdout TraceExporter = "stdout"
	TraceOTLP   TraceExporter = "otlp"
)

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"scienceol"`
	Service  string `mapstructure:"SERVICE" default:"equivalents"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Catalog struct {
	Backend CatalogBackend `mapstructure:"CATALOG_BACKEND" default:"json"`
	// Path of the reagent library when Backend is json.
	Path string `mapstructure:"CATALOG_PATH" default:"./library.json"`
}

type Database struct {
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"equivalents"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"equivalents"`
}

type Redis struct {
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Lock struct {
	Backend    LockBackend `mapstructure:"LOCK_BACKEND" default:"local"`
	Key        string      `mapstructure:"LOCK_KEY" default:"equivalents:catalog:register"`
	TTLSeconds int         `mapstructure:"LOCK_TTL_SECONDS" default:"10"`
}

type RPC struct {
	PubChem RPCPubChem `mapstructure:",squash"`
}

type RPCPubChem struct {
	Addr    string `mapstructure:"PUBCHEM_ADDR" default:"https://pubchem.ncbi.nlm.nih.gov"`
	Timeout int    `mapstructure:"PUBCHEM_TIMEOUT_SECONDS" default:"30"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	// Spans are recorded with every exporter, so trace ids reach the logs
	// even with none.
	Exporter      TraceExporter `mapstructure:"TRACE_EXPORTER" default:"none"`
	TraceEndpoint string        `mapstructure:"TRACE_TRACEENDPOINT" default:""`
}
