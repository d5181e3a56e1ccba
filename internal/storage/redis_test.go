package storage

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestDisabledClientIsNoop(t *testing.T) {
	for _, url := range []string{"", "not a redis url"} {
		r := NewRedisClient(url)
		if r.Enabled() {
			t.Fatalf("client for %q should be disabled", url)
		}
		if err := r.Set("k", "v"); err != nil {
			t.Errorf("Set: %v", err)
		}
		if val, err := r.Get("k"); err != nil || val != "" {
			t.Errorf("Get = %q, %v; want empty miss", val, err)
		}
		if err := r.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	}
}

func TestUnreachableServerDisablesClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if NewRedisClient("redis://" + addr).Enabled() {
		t.Error("client for a stopped server should be disabled")
	}
}

func TestEnabledClientStoresWithExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedisClient("redis://" + mr.Addr())
	if !r.Enabled() {
		t.Fatal("client should be enabled")
	}
	defer r.Close()

	if val, err := r.Get("ranking:v1:alm, anna:alpha"); err != nil || val != "" {
		t.Errorf("Get before Set = %q, %v; want empty miss", val, err)
	}

	if err := r.Set("ranking:v1:alm, anna:alpha", "1250"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, err := r.Get("ranking:v1:alm, anna:alpha"); err != nil || val != "1250" {
		t.Errorf("Get = %q, %v; want 1250", val, err)
	}
	if ttl := mr.TTL("ranking:v1:alm, anna:alpha"); ttl != rankingTTL {
		t.Errorf("TTL = %v, want %v", ttl, rankingTTL)
	}

	mr.FastForward(rankingTTL + time.Second)
	if val, err := r.Get("ranking:v1:alm, anna:alpha"); err != nil || val != "" {
		t.Errorf("Get after expiry = %q, %v; want empty miss", val, err)
	}
}
