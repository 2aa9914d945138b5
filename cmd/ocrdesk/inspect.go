package main

import (
	"github.com/spf13/cobra"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Check files before uploading",
	Long: `Inspect reports each file's size, content type, and PDF page count,
and flags files the backend will not accept. No text extraction is
performed locally.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Output(inspect.Files(args))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
