package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bolabot/bolabot-go/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestKeyedLimiter_PerKey(t *testing.T) {
	t.Parallel()
	kl := NewKeyedLimiter(KeyedConfig{Name: NameUser, Burst: 1, RefillRate: 0.001, CleanupPeriod: time.Hour})
	defer kl.Stop()

	if !kl.Allow("user1") {
		t.Error("user1 first request denied")
	}
	if kl.Allow("user1") {
		t.Error("user1 second request allowed (burst 1)")
	}
	if !kl.Allow("user2") {
		t.Error("user2 should have its own bucket")
	}
	if !kl.Allow("") {
		t.Error("empty key should always pass")
	}
}

func TestKeyedLimiter_DailyLimit(t *testing.T) {
	t.Parallel()
	kl := NewKeyedLimiter(KeyedConfig{Name: NameLLM, Burst: 10, RefillRate: 100, DailyLimit: 2, CleanupPeriod: time.Hour})
	defer kl.Stop()

	if kl.DailyRemaining("u") != 2 {
		t.Errorf("DailyRemaining(unseen) = %d, want 2", kl.DailyRemaining("u"))
	}
	kl.Allow("u")
	kl.Allow("u")
	if kl.Allow("u") {
		t.Error("daily limit not enforced")
	}
	if got := kl.DailyRemaining("u"); got != 0 {
		t.Errorf("DailyRemaining() = %d, want 0", got)
	}
	if got := kl.Available("u"); got < 7 {
		t.Errorf("rejected request should not drain the bucket, Available() = %v", got)
	}
}

func TestKeyedLimiter_CleanupDropsIdleKeys(t *testing.T) {
	t.Parallel()
	m := metrics.New(prometheus.NewRegistry())
	kl := NewKeyedLimiter(KeyedConfig{Name: NameUser, Burst: 5, RefillRate: 1000, CleanupPeriod: 20 * time.Millisecond, Metrics: m})
	defer kl.Stop()

	kl.Allow("u1")
	if kl.ActiveCount() != 1 {
		t.Fatalf("ActiveCount() = %d, want 1", kl.ActiveCount())
	}

	deadline := time.Now().Add(time.Second)
	for kl.ActiveCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if kl.ActiveCount() != 0 {
		t.Errorf("idle key not cleaned up")
	}
	if got := testutil.ToFloat64(m.RateLimiterUsers.WithLabelValues(NameUser)); got != 0 {
		t.Errorf("users gauge = %v, want 0", got)
	}
}

func TestKeyedLimiter_RecordsDrops(t *testing.T) {
	t.Parallel()
	m := metrics.New(prometheus.NewRegistry())
	kl := NewKeyedLimiter(KeyedConfig{Name: NameLLM, Burst: 1, RefillRate: 0.001, CleanupPeriod: time.Hour, Metrics: m})
	defer kl.Stop()

	kl.Allow("u")
	kl.Allow("u")
	kl.Allow("u")

	if got := testutil.ToFloat64(m.RateLimiterDropped.WithLabelValues(NameLLM)); got != 2 {
		t.Errorf("dropped = %v, want 2", got)
	}
}

func TestKeyedLimiter_Concurrent(t *testing.T) {
	t.Parallel()
	kl := NewKeyedLimiter(KeyedConfig{Name: NameUser, Burst: 50, RefillRate: 0.001, CleanupPeriod: time.Hour})
	defer kl.Stop()

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if kl.Allow("shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != 50 {
		t.Errorf("allowed %d concurrent requests, want exactly 50", got)
	}
}

func TestKeyedLimiter_StopIdempotent(t *testing.T) {
	t.Parallel()
	kl := NewKeyedLimiter(KeyedConfig{Name: NameUser, Burst: 1, RefillRate: 1})
	kl.Stop()
	kl.Stop()
}

func TestKeyedLimiter_Refund(t *testing.T) {
	t.Parallel()
	kl := NewKeyedLimiter(KeyedConfig{Name: NameLLM, Burst: 1, RefillRate: 0.0001, DailyLimit: 1, CleanupPeriod: time.Hour})
	defer kl.Stop()

	if !kl.Allow("u") {
		t.Fatal("first request denied")
	}
	if kl.Allow("u") {
		t.Fatal("second request allowed before refund")
	}
	kl.Refund("u")
	if got := kl.DailyRemaining("u"); got != 1 {
		t.Errorf("DailyRemaining() after refund = %d, want 1", got)
	}
	if !kl.Allow("u") {
		t.Error("refunded request denied")
	}

	kl.Refund("unseen")
	if kl.ActiveCount() != 1 {
		t.Errorf("Refund created an entry for an unseen key, ActiveCount() = %d", kl.ActiveCount())
	}
}

func TestLimiter_RefundCapped(t *testing.T) {
	t.Parallel()
	l := New(2, 0)
	l.Refund()
	if got := l.Available(); got != 2 {
		t.Errorf("Available() = %v, want capped at 2", got)
	}
}
