package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
)

// Property: For any strictly increasing condor strikes, the build_iron_condor tool
// returns an OK credit result with four legs in put-low, put-high, call-low, call-high
// order; for any overlapping strikes it returns INVALID_STRIKE_ORDERING.
func TestProperty_IronCondorToolOutput(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	te := NewToolExecutor(nil, nil, testDefaults, zerolog.Nop())

	condorArgs := func(a, b, c, d int) json.RawMessage {
		return json.RawMessage(fmt.Sprintf(`{"symbol":"SPY","expiration":"2025-06-20",
			"put_low_strike":"%d","put_high_strike":"%d","call_low_strike":"%d","call_high_strike":"%d",
			"quantity":1,"order_type":"MARKET"}`, a, b, c, d))
	}

	properties.Property("ordered strikes produce a four-leg credit condor", prop.ForAll(
		func(base, w1, gap, w2 int) bool {
			putLow, putHigh := base, base+w1
			callLow, callHigh := putHigh+gap, putHigh+gap+w2

			out, err := te.ExecuteTool(context.Background(), ToolBuildIronCondor, condorArgs(putLow, putHigh, callLow, callHigh))
			if err != nil {
				return false
			}
			var result ToolResult
			if json.Unmarshal([]byte(out), &result) != nil || !result.OK || len(result.Legs) != 4 {
				return false
			}
			want := []string{fmt.Sprint(putLow), fmt.Sprint(putHigh), fmt.Sprint(callLow), fmt.Sprint(callHigh)}
			for i, leg := range result.Legs {
				if leg.Strike != want[i] {
					return false
				}
			}
			return result.PriceType == "CREDIT"
		},
		gen.IntRange(1, 400),
		gen.IntRange(1, 20),
		gen.IntRange(1, 50),
		gen.IntRange(1, 20),
	))

	properties.Property("overlapping strikes are rejected with their code", prop.ForAll(
		func(base, w1, overlap, w2 int) bool {
			putLow, putHigh := base, base+w1
			callLow := putHigh - overlap
			callHigh := callLow + w2

			out, err := te.ExecuteTool(context.Background(), ToolBuildIronCondor, condorArgs(putLow, putHigh, callLow, callHigh))
			if err == nil {
				return false
			}
			var result ToolResult
			if json.Unmarshal([]byte(out), &result) != nil || result.Error == nil {
				return false
			}
			return result.Error.Code == "INVALID_STRIKE_ORDERING"
		},
		gen.IntRange(10, 400),
		gen.IntRange(1, 20),
		gen.IntRange(0, 5),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
