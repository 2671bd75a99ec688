package zedloc

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_Burst(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         3,
	})

	for i := 0; i < 3; i++ {
		if !rl.TryAcquire() {
			t.Fatalf("Expected token %d to be available", i)
		}
	}

	if rl.TryAcquire() {
		t.Error("Expected bucket to be drained after burst")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	// 6000 RPM = 100 tokens per second, so a drained bucket refills fast.
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 6000,
		BurstSize:         1,
	})

	if !rl.TryAcquire() {
		t.Fatal("Expected initial token")
	}
	if rl.TryAcquire() {
		t.Fatal("Expected drained bucket")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.TryAcquire() {
		t.Error("Expected bucket to refill")
	}
}

func TestRateLimiter_WaitCanceled(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1, // One token per minute
		BurstSize:         1,
	})

	// Drain the bucket.
	if !rl.TryAcquire() {
		t.Fatal("Expected initial token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err == nil {
		t.Error("Expected Wait to fail on context timeout")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{})

	// Zero config falls back to 60 RPM with burst equal to RPM.
	if got := rl.Available(); got < 59 {
		t.Errorf("Available = %v, want full default bucket", got)
	}
}

func TestRateLimitedProvider(t *testing.T) {
	inner := &failingProvider{}
	p := NewRateLimitedProvider(inner, RateLimitConfig{
		RequestsPerMinute: 6000,
		BurstSize:         10,
	})

	result, err := p.Translate(context.Background(), TranslateRequest{
		Texts:      []string{"Search"},
		TargetLang: "zh-CN",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(result) != 1 {
		t.Errorf("Expected 1 result, got %d", len(result))
	}

	if p.Limiter().Available() > 9.5 {
		t.Error("Expected a token to be consumed")
	}
}

func TestRateLimitedProvider_Canceled(t *testing.T) {
	inner := &failingProvider{}
	p := NewRateLimitedProvider(inner, RateLimitConfig{
		RequestsPerMinute: 1,
		BurstSize:         1,
	})

	// Drain, then a cancelled context must surface as a provider error.
	if !p.Limiter().TryAcquire() {
		t.Fatal("Expected initial token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Translate(ctx, TranslateRequest{Texts: []string{"x"}, TargetLang: "zh-CN"})
	if err == nil {
		t.Fatal("Expected error from cancelled wait")
	}
	if IsRetryable(err) {
		t.Error("Cancelled waits must not be retryable")
	}
}
