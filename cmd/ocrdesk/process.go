package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ocrdesk/ocrdesk/internal/api"
	"github.com/ocrdesk/ocrdesk/internal/render"
	"github.com/ocrdesk/ocrdesk/internal/selection"
	"github.com/ocrdesk/ocrdesk/internal/workflow"
)

var (
	processEngine   string
	processLanguage string
	processNoPrep   bool
	processMerge    bool
	processCopy     bool
	processSave     bool
	processSaveDir  string
	processVerbose  bool
)

var processCmd = &cobra.Command{
	Use:   "process <file>...",
	Short: "Submit documents for OCR and render the result",
	Long: `Submit one or more PDF or image files to the OCR backend as a single
batch and render the first document's result: summary stats, full
extracted text, and a per-page breakdown for multi-page documents.

Examples:
  ocrdesk process scan.pdf
  ocrdesk process page1.png page2.png --engine easyocr
  ocrdesk process contract.pdf --save --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgMgr, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()

		logLevel := slog.LevelWarn
		if processVerbose {
			logLevel = slog.LevelInfo
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

		opts := api.ProcessOptions{
			Engine:    cfg.OCR.Engine,
			Language:  cfg.OCR.Language,
			MergePDFs: processMerge,
		}
		if processEngine != "" {
			opts.Engine = processEngine
		}
		if processLanguage != "" {
			opts.Language = processLanguage
		}
		preprocess := cfg.OCR.Preprocess && !processNoPrep
		opts.Preprocess = &preprocess

		view := &terminalView{out: cmd.OutOrStdout()}
		ctrl := workflow.New(newBackendClient(cfg), view, logger, opts)

		for _, path := range args {
			f, err := selection.FromPath(path)
			if err != nil {
				return err
			}
			ctrl.Pending().Add(f)
		}

		ctrl.Submit(cmd.Context())
		if ctrl.Current() == nil {
			return errors.New("processing failed")
		}

		if processCopy {
			if err := ctrl.Copy(); err != nil {
				return err
			}
		}
		if processSave || processSaveDir != "" {
			dir := processSaveDir
			if dir == "" {
				h, err := ocrdeskHome()
				if err != nil {
					return err
				}
				dir = h.ExportsPath()
			}
			if _, err := ctrl.Download(dir); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processEngine, "engine", "", "OCR engine (default from config)")
	processCmd.Flags().StringVar(&processLanguage, "language", "", "OCR language (default from config)")
	processCmd.Flags().BoolVar(&processNoPrep, "no-preprocess", false, "Skip image preprocessing on the backend")
	processCmd.Flags().BoolVar(&processMerge, "merge", false, "Merge multiple PDFs into one document before OCR")
	processCmd.Flags().BoolVar(&processCopy, "copy", false, "Copy the extracted text to the clipboard")
	processCmd.Flags().BoolVar(&processSave, "save", false, "Save the extracted text to the exports directory")
	processCmd.Flags().StringVar(&processSaveDir, "save-dir", "", "Directory to save the extracted text in")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Verbose progress logging")

	rootCmd.AddCommand(processCmd)
}

// terminalView renders workflow side effects to the terminal.
type terminalView struct {
	out io.Writer
}

func (v *terminalView) SetState(s workflow.State) {}

func (v *terminalView) SetProcessing(active bool) {
	if active {
		fmt.Fprintln(v.out, "Processing...")
	}
}

// RenderFileList is called on every list mutation; the terminal shows
// one line per mutation rather than redrawing the whole list.
func (v *terminalView) RenderFileList(files []selection.File) {
	if len(files) == 0 {
		fmt.Fprintln(v.out, "Queue empty")
		return
	}
	last := files[len(files)-1]
	fmt.Fprintf(v.out, "Queued %d file(s), latest: %s (%d bytes)\n", len(files), last.Name, last.Size)
}

func (v *terminalView) ShowResult(vm render.ViewModel, elapsed string) {
	fmt.Fprintf(v.out, "\nCompleted in %ss\n\n", elapsed)
	render.WriteTerminal(v.out, vm)
}

func (v *terminalView) Notify(msg string) {
	fmt.Fprintln(v.out, msg)
}
