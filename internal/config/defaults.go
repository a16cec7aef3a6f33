package config

const (
	// DefaultPath is used when no --config flag is given.
	DefaultPath = "etc/config.yml"

	defaultLogLevel  = "WARN"
	defaultLogFormat = "console"
)

const (
	// KeyLogging holds the configured log level name.
	KeyLogging = "core.logging"
	// KeyConfig receives the resolved configuration paths after load.
	KeyConfig     = "core.config"
	KeyLogFormat  = "core.log_format"
	KeyLogFile    = "core.log_file"
	// KeyMetricsDir is a node_exporter textfile collector directory.
	KeyMetricsDir = "core.metrics_dir"
)

// CoreKeys lists every key the core namespace understands, without the
// "core." prefix.
var CoreKeys = []string{"logging", "config", "log_format", "log_file", "metrics_dir"}

// Core is the typed view of the "core" namespace.
type Core struct {
	Logging    string
	LogFormat  string
	LogFile    string
	MetricsDir string
	Config     []string
}

// DefaultCore returns the core settings used when a key is absent.
func DefaultCore() Core {
	return Core{
		Logging:   defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}
