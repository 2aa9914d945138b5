package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ocrdesk/ocrdesk/internal/api"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the OCR backend directly",
	Long: `API commands call the OCR backend via HTTP.

Use --server to point at a non-default backend.

Examples:
  ocrdesk api health            # Check backend health
  ocrdesk api engines           # List available OCR engines
  ocrdesk api tasks             # List processing tasks
  ocrdesk api task <id>         # Get one task's status`,
}

var apiHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := backendFromFlags()
		if err != nil {
			return err
		}
		if err := client.Health(cmd.Context()); err != nil {
			return fmt.Errorf("backend unhealthy: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Status: ok")
		return nil
	},
}

var apiEnginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List available OCR engines",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := backendFromFlags()
		if err != nil {
			return err
		}
		resp, err := client.Engines(cmd.Context())
		if err != nil {
			return err
		}
		return api.Output(resp)
	},
}

var apiTaskCmd = &cobra.Command{
	Use:   "task <id>",
	Short: "Get the status of a processing task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := backendFromFlags()
		if err != nil {
			return err
		}
		resp, err := client.Task(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return api.Output(resp)
	},
}

var (
	tasksLimit  int
	tasksOffset int
)

var apiTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List processing tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := backendFromFlags()
		if err != nil {
			return err
		}
		resp, err := client.Tasks(cmd.Context(), tasksLimit, tasksOffset)
		if err != nil {
			return err
		}
		return api.Output(resp)
	},
}

var apiTaskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a processing task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := backendFromFlags()
		if err != nil {
			return err
		}
		if err := client.DeleteTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted task "+strconv.Quote(args[0]))
		return nil
	},
}

// backendFromFlags builds a client from config plus the --server flag.
func backendFromFlags() (*api.Client, error) {
	cfgMgr, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newBackendClient(cfgMgr.Get()), nil
}

func init() {
	apiTasksCmd.Flags().IntVar(&tasksLimit, "limit", 10, "Maximum tasks to list")
	apiTasksCmd.Flags().IntVar(&tasksOffset, "offset", 0, "Listing offset")

	apiTaskCmd.AddCommand(apiTaskDeleteCmd)
	apiCmd.AddCommand(apiHealthCmd, apiEnginesCmd, apiTaskCmd, apiTasksCmd)
	rootCmd.AddCommand(apiCmd)
}
