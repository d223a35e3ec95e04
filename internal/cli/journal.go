package cli

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"spread-trader/internal/models"
	"spread-trader/internal/store"
)

// addJournalCommands adds order journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Order journal",
		Long:  "Review orders built and submitted through the trader CLI.",
	}

	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))

	rootCmd.AddCommand(cmd)
}

func newJournalListCmd(app *App) *cobra.Command {
	var (
		symbol   string
		strategy string
		status   string
		days     int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Journal not initialized. No order data available.")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			filter := store.OrderFilter{
				Symbol:   strings.ToUpper(symbol),
				Strategy: models.ComplexOrderStrategyType(strings.ReplaceAll(strings.ToUpper(strategy), "-", "_")),
				Status:   strings.ToUpper(status),
				Limit:    limit,
			}
			if days > 0 {
				filter.StartDate = time.Now().AddDate(0, 0, -days)
			}

			records, err := app.Store.ListOrders(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch orders: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			if len(records) == 0 {
				output.Info("No orders recorded.")
				output.Dim("Tip: Orders are recorded when you build them with 'trader vertical' or 'trader condor'.")
				return nil
			}

			table := NewTable(output, "Created", "ID", "Symbol", "Strategy", "Net", "Type", "Price", "Qty", "Status")
			for _, r := range records {
				table.AddRow(
					FormatDateTime(r.CreatedAt),
					TruncateString(r.ID, 8),
					r.Symbol,
					string(r.Strategy),
					output.PriceType(string(r.PriceType)),
					string(r.OrderType),
					FormatLimit(r.Price),
					strconv.Itoa(r.Quantity),
					r.Status,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "filter by underlying")
	cmd.Flags().StringVar(&strategy, "strategy", "", "filter by strategy (VERTICAL, IRON_CONDOR)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (DRAFT, SUBMITTED, FAILED)")
	cmd.Flags().IntVar(&days, "days", 0, "only orders from the last N days")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of orders")

	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a journaled order and its brokerage payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				output.Warning("Journal not initialized.")
				return nil
			}

			record, err := app.Store.GetOrder(cmd.Context(), args[0])
			if err != nil {
				output.Error("Failed to fetch order: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(record)
			}

			output.Bold("%s %s", record.Symbol, record.Strategy)
			output.Printf("  ID:         %s\n", record.ID)
			output.Printf("  Net:        %s\n", output.PriceType(string(record.PriceType)))
			output.Printf("  Order Type: %s @ %s\n", record.OrderType, FormatLimit(record.Price))
			output.Printf("  Quantity:   %s\n", FormatQuantity(record.Quantity))
			output.Printf("  Status:     %s\n", record.Status)
			if record.BrokerOrderID != "" {
				output.Printf("  Order ID:   %s\n", record.BrokerOrderID)
			}
			output.Printf("  Created:    %s\n", FormatDateTime(record.CreatedAt))
			output.Println()

			var payload interface{}
			if err := json.Unmarshal(record.Payload, &payload); err != nil {
				output.Println(string(record.Payload))
				return nil
			}
			return output.JSON(payload)
		},
	}
}
