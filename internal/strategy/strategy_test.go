package strategy

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

var testExpiration = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

func strike(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestBuildLeg(t *testing.T) {
	leg, err := BuildLeg(" xyz ", testExpiration.Add(15*time.Hour), decimal.RequireFromString("102.5"),
		models.OptionTypeCall, models.OrderSideBuy, models.PositionEffectOpening, 3)
	if err != nil {
		t.Fatalf("BuildLeg returned error: %v", err)
	}
	if leg.Instrument.Underlying != "XYZ" {
		t.Errorf("underlying = %q, want XYZ", leg.Instrument.Underlying)
	}
	if !leg.Instrument.Expiration.Equal(testExpiration) {
		t.Errorf("expiration = %v, want %v", leg.Instrument.Expiration, testExpiration)
	}
	if leg.Quantity != 3 || leg.Instruction() != "BUY_TO_OPEN" {
		t.Errorf("unexpected leg %+v", leg)
	}
}

func TestBuildLegRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		symbol     string
		expiration time.Time
		strike     decimal.Decimal
		optionType models.OptionType
		side       models.OrderSide
		effect     models.PositionEffect
		quantity   int
	}{
		{"zero quantity", "XYZ", testExpiration, strike(100), models.OptionTypeCall, models.OrderSideBuy, models.PositionEffectOpening, 0},
		{"negative quantity", "XYZ", testExpiration, strike(100), models.OptionTypeCall, models.OrderSideBuy, models.PositionEffectOpening, -1},
		{"unknown option type", "XYZ", testExpiration, strike(100), models.OptionType("STRADDLE"), models.OrderSideBuy, models.PositionEffectOpening, 1},
		{"unknown side", "XYZ", testExpiration, strike(100), models.OptionTypePut, models.OrderSide("HOLD"), models.PositionEffectOpening, 1},
		{"unknown position effect", "XYZ", testExpiration, strike(100), models.OptionTypePut, models.OrderSideSell, models.PositionEffect("ROLL"), 1},
		{"empty symbol", "  ", testExpiration, strike(100), models.OptionTypePut, models.OrderSideSell, models.PositionEffectOpening, 1},
		{"zero expiration", "XYZ", time.Time{}, strike(100), models.OptionTypePut, models.OrderSideSell, models.PositionEffectOpening, 1},
		{"zero strike", "XYZ", testExpiration, decimal.Zero, models.OptionTypePut, models.OrderSideSell, models.PositionEffectOpening, 1},
		{"symbol too long for OCC root", "ABCDEFG", testExpiration, strike(100), models.OptionTypeCall, models.OrderSideBuy, models.PositionEffectOpening, 1},
		{"strike too large for OCC field", "XYZ", testExpiration, strike(100000), models.OptionTypeCall, models.OrderSideBuy, models.PositionEffectOpening, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLeg(tt.symbol, tt.expiration, tt.strike, tt.optionType, tt.side, tt.effect, tt.quantity)
			if !errors.Is(err, apperrors.ErrInvalidLeg) {
				t.Fatalf("err = %v, want ErrInvalidLeg", err)
			}
		})
	}
}

func TestBuildLegAcceptsOCCLimits(t *testing.T) {
	leg, err := BuildLeg("ABCDEF", testExpiration, decimal.RequireFromString("99999.999"),
		models.OptionTypePut, models.OrderSideSell, models.PositionEffectOpening, 1)
	if err != nil {
		t.Fatalf("BuildLeg: %v", err)
	}
	if got := leg.Instrument.OCCSymbol(); len(got) != 21 {
		t.Errorf("OCCSymbol() = %q, want 21 characters", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		optionType models.OptionType
		low, high  models.OrderSide
		want       models.NetPriceType
	}{
		{models.OptionTypeCall, models.OrderSideBuy, models.OrderSideSell, models.NetDebit},
		{models.OptionTypeCall, models.OrderSideSell, models.OrderSideBuy, models.NetCredit},
		{models.OptionTypePut, models.OrderSideBuy, models.OrderSideSell, models.NetCredit},
		{models.OptionTypePut, models.OrderSideSell, models.OrderSideBuy, models.NetDebit},
	}

	for _, tt := range tests {
		got, err := Classify(tt.optionType, tt.low, tt.high)
		if err != nil {
			t.Fatalf("Classify(%s, %s, %s) error: %v", tt.optionType, tt.low, tt.high, err)
		}
		if got != tt.want {
			t.Errorf("Classify(%s, %s, %s) = %s, want %s", tt.optionType, tt.low, tt.high, got, tt.want)
		}
	}
}

func TestClassifyRejectsSameSides(t *testing.T) {
	for _, side := range []models.OrderSide{models.OrderSideBuy, models.OrderSideSell} {
		_, err := Classify(models.OptionTypeCall, side, side)
		if !errors.Is(err, apperrors.ErrInvalidSpreadConfiguration) {
			t.Errorf("Classify with both %s: err = %v, want ErrInvalidSpreadConfiguration", side, err)
		}
	}

	if _, err := Classify(models.OptionType("X"), models.OrderSideBuy, models.OrderSideSell); !errors.Is(err, apperrors.ErrInvalidLeg) {
		t.Errorf("unknown option type: err = %v, want ErrInvalidLeg", err)
	}
}

func TestCanonicalOrderType(t *testing.T) {
	if got := CanonicalOrderType(models.NetDebit); got != models.OrderTypeNetDebit {
		t.Errorf("debit -> %s", got)
	}
	if got := CanonicalOrderType(models.NetCredit); got != models.OrderTypeNetCredit {
		t.Errorf("credit -> %s", got)
	}
}
