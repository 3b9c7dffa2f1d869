// internal/common/config/config.go
package config

// Config is the main application configuration struct. It is built once at
// startup and passed explicitly into every collaborator constructor; nothing
// reads credentials from process globals after Load returns.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Monday  MondayConfig  `mapstructure:"monday"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// MondayConfig holds the board-service connection settings. APIKey is the one
// mandatory credential in the whole system.
type MondayConfig struct {
	APIKey  string       `mapstructure:"api_key"`
	APIURL  string       `mapstructure:"api_url"`
	Timeout int          `mapstructure:"timeout"` // milliseconds
	Boards  BoardsConfig `mapstructure:"boards"`
}

// BoardsConfig pins the two board ids the agent analyzes.
type BoardsConfig struct {
	Deals      string `mapstructure:"deals"`
	WorkOrders string `mapstructure:"work_orders"`
}

// OpenAIConfig holds the language-model settings. An empty APIKey is not a
// startup error: intent extraction and narration degrade to their
// unavailable variants instead.
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
