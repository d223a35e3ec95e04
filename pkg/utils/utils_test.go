package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1.5", "$1.50"},
		{"999.99", "$999.99"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-250", "-$250.00"},
	}
	for _, tt := range tests {
		if got := FormatDollars(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatDollars(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(decimal.NullDecimal{}); got != "MKT" {
		t.Errorf("FormatPrice(null) = %q", got)
	}
	if got := FormatPrice(decimal.NewNullDecimal(decimal.RequireFromString("1.2"))); got != "1.20" {
		t.Errorf("FormatPrice(1.2) = %q", got)
	}
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, BackoffFactor: 2}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("err = %v, calls = %d", err, calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastRetry()
	cfg.ShouldRetry = func(err error) bool { return !errors.Is(err, permanent) }

	calls := 0
	_, err := RetryWithResult(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Fatalf("err = %v, calls = %d", err, calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetry()
	cfg.InitialDelay = time.Second
	err := Retry(ctx, cfg, func() error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCalculateBackoff(t *testing.T) {
	if got := CalculateBackoff(3, 100*time.Millisecond, time.Second, 2); got != 800*time.Millisecond {
		t.Errorf("attempt 3 = %v", got)
	}
	if got := CalculateBackoff(10, 100*time.Millisecond, time.Second, 2); got != time.Second {
		t.Errorf("capped = %v", got)
	}
}
