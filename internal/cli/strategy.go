package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"spread-trader/internal/agents"
	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/logging"
	"spread-trader/internal/ticket"
)

// addStrategyCommands adds the order construction commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVerticalCmd(app))
	rootCmd.AddCommand(newCondorCmd(app))
}

// envelopeFlags are the order-level flags shared by the strategy commands.
type envelopeFlags struct {
	orderType string
	price     string
	duration  string
	session   string
	closing   bool
	submit    bool
}

func (f *envelopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.orderType, "order-type", "", "MARKET, LIMIT, NET_DEBIT or NET_CREDIT (default: the strategy's own)")
	cmd.Flags().StringVar(&f.price, "price", "", "net limit price")
	cmd.Flags().StringVar(&f.duration, "duration", "", "DAY or GOOD_TILL_CANCEL (default from config)")
	cmd.Flags().StringVar(&f.session, "session", "", "NORMAL or EXTENDED (default from config)")
	cmd.Flags().BoolVar(&f.closing, "close", false, "build the order that closes this position")
	cmd.Flags().BoolVar(&f.submit, "submit", false, "submit the order after building it")
}

func (f *envelopeFlags) apply(t *ticket.Ticket) error {
	t.OrderType = f.orderType
	t.Duration = f.duration
	t.Session = f.session
	t.Closing = f.closing
	if f.price != "" {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return apperrors.NewStrategyError(apperrors.ErrInvalidPrice, "price", f.price, "not a number")
		}
		t.LimitPrice = &price
	}
	return nil
}

func parseStrike(field, value string) (decimal.Decimal, error) {
	strike, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, apperrors.InvalidLeg(field, value, "not a number")
	}
	return strike, nil
}

func newVerticalCmd(app *App) *cobra.Command {
	var (
		expiration string
		optionType string
		low, high  string
		side       string
		quantity   int
		envelope   envelopeFlags
	)

	cmd := &cobra.Command{
		Use:   "vertical <symbol>",
		Short: "Build a vertical spread order",
		Long: `Build a two-leg vertical spread. The lower strike takes --side and the
higher strike the opposite side. With --close, --side is the side the lower
strike was opened with and both legs are reversed.`,
		Example: `  trader vertical XYZ --exp 2025-06-20 --type call --low 100 --high 105 --side buy --price 1.25
  trader vertical XYZ --exp 2025-06-20 --type put --low 90 --high 95 --side sell --order-type market --submit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := agents.Request{
				Ticket: ticket.Ticket{
					Strategy:   ticket.StrategyVertical,
					Symbol:     args[0],
					Expiration: expiration,
					Quantity:   quantity,
					OptionType: optionType,
					LowSide:    side,
				},
				Submit: envelope.submit,
			}
			return runRequest(cmd, app, req, func(t *ticket.Ticket) error {
				var err error
				if t.LowStrike, err = parseStrike("low_strike", low); err != nil {
					return err
				}
				if t.HighStrike, err = parseStrike("high_strike", high); err != nil {
					return err
				}
				return envelope.apply(t)
			})
		},
	}

	cmd.Flags().StringVar(&expiration, "exp", "", "expiration date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&optionType, "type", "", "option type: call or put")
	cmd.Flags().StringVar(&low, "low", "", "lower strike")
	cmd.Flags().StringVar(&high, "high", "", "higher strike")
	cmd.Flags().StringVar(&side, "side", "", "side of the lower strike: buy or sell")
	cmd.Flags().IntVar(&quantity, "qty", 1, "contracts per leg")
	envelope.register(cmd)
	for _, name := range []string{"exp", "type", "low", "high", "side"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newCondorCmd(app *App) *cobra.Command {
	var (
		expiration        string
		putLow, putHigh   string
		callLow, callHigh string
		variant           string
		quantity          int
		envelope          envelopeFlags
	)

	cmd := &cobra.Command{
		Use:     "condor <symbol>",
		Aliases: []string{"iron-condor"},
		Short:   "Build an iron condor order",
		Long: `Build a four-leg short iron condor: a credit put spread below a credit
call spread. Strikes must satisfy put-low < put-high < call-low < call-high.`,
		Example: `  trader condor XYZ --exp 2025-06-20 --put-low 90 --put-high 95 --call-low 105 --call-high 110 --qty 2 --price 1.15`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := agents.Request{
				Ticket: ticket.Ticket{
					Strategy:   ticket.StrategyIronCondor,
					Symbol:     args[0],
					Expiration: expiration,
					Quantity:   quantity,
					Variant:    variant,
				},
				Submit: envelope.submit,
			}
			return runRequest(cmd, app, req, func(t *ticket.Ticket) error {
				var err error
				if t.PutLowStrike, err = parseStrike("put_low_strike", putLow); err != nil {
					return err
				}
				if t.PutHighStrike, err = parseStrike("put_high_strike", putHigh); err != nil {
					return err
				}
				if t.CallLowStrike, err = parseStrike("call_low_strike", callLow); err != nil {
					return err
				}
				if t.CallHighStrike, err = parseStrike("call_high_strike", callHigh); err != nil {
					return err
				}
				return envelope.apply(t)
			})
		},
	}

	cmd.Flags().StringVar(&expiration, "exp", "", "expiration date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&putLow, "put-low", "", "long put strike")
	cmd.Flags().StringVar(&putHigh, "put-high", "", "short put strike")
	cmd.Flags().StringVar(&callLow, "call-low", "", "short call strike")
	cmd.Flags().StringVar(&callHigh, "call-high", "", "long call strike")
	cmd.Flags().StringVar(&variant, "variant", "credit", "condor variant (only credit is supported)")
	cmd.Flags().IntVar(&quantity, "qty", 1, "contracts per leg")
	envelope.register(cmd)
	for _, name := range []string{"exp", "put-low", "put-high", "call-low", "call-high"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

// runRequest completes req with prepare, runs it and renders the result.
func runRequest(cmd *cobra.Command, app *App, req agents.Request, prepare func(*ticket.Ticket) error) error {
	output := NewOutput(cmd)
	logger := logging.WithSymbol(app.Logger, strings.ToUpper(req.Symbol))

	if prepare != nil {
		if err := prepare(&req.Ticket); err != nil {
			return renderFailure(output, err)
		}
	}

	result, err := app.Tools.Run(cmd.Context(), req)
	if err != nil {
		logger.Debug().Err(err).Msg("Order construction failed")
		return renderFailure(output, err)
	}

	if output.IsJSON() {
		return output.JSON(result)
	}
	renderResult(output, result)
	return nil
}

func renderFailure(output *Output, err error) error {
	desc := agents.DescribeError(err)
	if output.IsJSON() {
		output.JSON(agents.ToolResult{OK: false, Error: &desc})
		return err
	}
	output.Error("✗ %s: %s", desc.Code, desc.Message)
	return err
}

func renderResult(output *Output, result *agents.ToolResult) {
	output.Bold("%s %s %s  %s", result.Underlying, result.Strategy, result.Expiration, FormatStrikes(result.Legs))
	output.Printf("  Net:        %s\n", output.PriceType(result.PriceType))
	output.Printf("  Order Type: %s @ %s\n", result.OrderType, FormatLimit(result.Price))
	output.Printf("  Quantity:   %s\n", FormatQuantity(result.Quantity))
	output.Println()

	table := NewTable(output, "INSTRUCTION", "SYMBOL", "TYPE", "STRIKE", "QTY")
	for _, leg := range result.Legs {
		table.AddRow(output.Instruction(leg.Instruction), leg.Symbol, leg.OptionType, leg.Strike, strconv.Itoa(leg.Quantity))
	}
	table.Render()
	output.Println()

	if result.JournalID != "" {
		output.Dim("Journal: %s", result.JournalID)
	}
	if result.OrderID != "" {
		output.Success("✓ Submitted %s (%s)", result.OrderID, result.Status)
	} else {
		output.Info("Draft only, use --submit to place the order")
	}
}
