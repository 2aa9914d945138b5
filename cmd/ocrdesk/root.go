package main

import (
	"github.com/spf13/cobra"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/config"
	"github.com/ocrdesk/ocrdesk/internal/home"
	"github.com/ocrdesk/ocrdesk/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	serverURL    string
)

var rootCmd = &cobra.Command{
	Use:   "ocrdesk",
	Short: "Upload documents to an OCR backend and render the results",
	Long: `ocrdesk submits PDF and image files to an OCR processing backend
and renders the structured results: aggregate confidence, per-page
breakdown, and the full extracted text.

Common usage:
  ocrdesk process scan.pdf photo.png   # Submit files and print the result
  ocrdesk inspect scan.pdf             # Check files before uploading
  ocrdesk serve                        # Host the local upload page`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.ocrdesk/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "ocrdesk home directory (default: ~/.ocrdesk)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&serverURL, "server", "", "OCR backend URL (overrides config)",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the configuration manager, preferring an explicit
// --config path over the default search locations.
func loadConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}

// newBackendClient builds the backend client from config and flags.
// --server wins over the configured URL.
func newBackendClient(cfg *config.Config) *api.Client {
	url := cfg.Backend.URL
	if serverURL != "" {
		url = serverURL
	}

	opts := []api.Option{api.WithTimeout(cfg.Timeout())}
	if token := cfg.ResolveAuthToken(); token != "" {
		opts = append(opts, api.WithAuthToken(token))
	}
	return api.NewClient(url, opts...)
}

// ocrdeskHome returns the home directory, creating it if needed.
func ocrdeskHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}
	return h, nil
}
