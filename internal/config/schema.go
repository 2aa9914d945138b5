package config

// Config holds ocrdesk configuration.
// Stored at: ~/.ocrdesk/config.yaml
type Config struct {
	Backend BackendCfg `mapstructure:"backend" yaml:"backend"`
	OCR     OCRCfg     `mapstructure:"ocr" yaml:"ocr"`
	Serve   ServeCfg   `mapstructure:"serve" yaml:"serve"`
}

// BackendCfg configures the remote OCR processing backend.
type BackendCfg struct {
	// URL is the backend base URL. The default points at the local
	// development origin the backend ships with.
	URL string `mapstructure:"url" yaml:"url"`
	// TimeoutSeconds is the HTTP client timeout for uploads.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	// AuthToken is an optional bearer token (supports ${ENV_VAR} syntax).
	AuthToken string `mapstructure:"auth_token" yaml:"auth_token"`
}

// OCRCfg holds processing options forwarded to the backend.
type OCRCfg struct {
	Engine     string `mapstructure:"engine" yaml:"engine"`         // "tesseract", "easyocr", "paddleocr"
	Language   string `mapstructure:"language" yaml:"language"`     // e.g. "eng"
	Preprocess bool   `mapstructure:"preprocess" yaml:"preprocess"` // image preprocessing before OCR
}

// ServeCfg configures the local web host (ocrdesk serve).
type ServeCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendCfg{
			URL:            "http://127.0.0.1:8000",
			TimeoutSeconds: 600,
			AuthToken:      "${OCRDESK_AUTH_TOKEN}",
		},
		OCR: OCRCfg{
			Engine:     "tesseract",
			Language:   "eng",
			Preprocess: true,
		},
		Serve: ServeCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}
