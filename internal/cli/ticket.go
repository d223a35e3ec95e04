package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"spread-trader/internal/agents"
	"spread-trader/internal/ticket"
)

// addTicketCommands adds order ticket commands.
func addTicketCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Build orders from YAML order tickets",
		Long:  "Build, validate, and submit orders described in YAML ticket files.",
	}

	cmd.AddCommand(newTicketRunCmd(app))
	cmd.AddCommand(newTicketTemplateCmd())

	rootCmd.AddCommand(cmd)
}

func newTicketRunCmd(app *App) *cobra.Command {
	var submit bool

	cmd := &cobra.Command{
		Use:     "run <file>",
		Short:   "Build the order described by a ticket file",
		Example: "  trader ticket run condor.yaml --submit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := ticket.Load(args[0])
			if err != nil {
				output := NewOutput(cmd)
				output.Error("✗ %v", err)
				return err
			}
			return runRequest(cmd, app, agents.Request{Ticket: *t, Submit: submit}, nil)
		},
	}

	cmd.Flags().BoolVar(&submit, "submit", false, "submit the order after building it")
	return cmd
}

func newTicketTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "template <vertical|iron_condor>",
		Short:     "Print an example ticket",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{ticket.StrategyVertical, ticket.StrategyIronCondor},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := exampleTicket(args[0])
			if err != nil {
				return err
			}
			data, err := ticket.Encode(t)
			if err != nil {
				return err
			}
			output := NewOutput(cmd)
			output.Printf("%s", data)
			return nil
		},
	}
}

func exampleTicket(kind string) (*ticket.Ticket, error) {
	probe := &ticket.Ticket{Strategy: kind}
	resolved, err := probe.Kind()
	if err != nil {
		return nil, err
	}

	price := decimal.RequireFromString("1.15")
	switch resolved {
	case ticket.StrategyVertical:
		return &ticket.Ticket{
			Strategy:   ticket.StrategyVertical,
			Symbol:     "XYZ",
			Expiration: "2025-06-20",
			Quantity:   1,
			OptionType: "CALL",
			LowStrike:  decimal.NewFromInt(100),
			HighStrike: decimal.NewFromInt(105),
			LowSide:    "BUY",
			LimitPrice: &price,
		}, nil
	case ticket.StrategyIronCondor:
		return &ticket.Ticket{
			Strategy:       ticket.StrategyIronCondor,
			Symbol:         "XYZ",
			Expiration:     "2025-06-20",
			Quantity:       1,
			PutLowStrike:   decimal.NewFromInt(90),
			PutHighStrike:  decimal.NewFromInt(95),
			CallLowStrike:  decimal.NewFromInt(105),
			CallHighStrike: decimal.NewFromInt(110),
			LimitPrice:     &price,
		}, nil
	}
	return nil, fmt.Errorf("no template for %s", kind)
}
