package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"spread-trader/internal/agents"
)

// addToolCommands adds commands that expose the assistant tool interface.
func addToolCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Assistant tool interface",
		Long:  "Inspect and invoke the function tools offered to AI assistants.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the tool definitions as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewOutput(cmd).JSON(agents.GetToolDefinitions())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "call <tool> <json-args>",
		Short:   "Invoke a tool with JSON arguments",
		Example: `  trader tools call build_iron_condor '{"symbol":"XYZ","expiration":"2025-06-20","put_low_strike":"90","put_high_strike":"95","call_low_strike":"105","call_high_strike":"110","quantity":1,"limit_price":"1.15"}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Tools.ExecuteTool(cmd.Context(), args[0], json.RawMessage(args[1]))
			if out != "" {
				NewOutput(cmd).Println(out)
			}
			return err
		},
	})

	rootCmd.AddCommand(cmd)
}
