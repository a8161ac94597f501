package ratelimit

import (
	"testing"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	rl := New(1, 3)

	for i := range 3 {
		if !rl.Allow("ip-1") {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}

	if rl.Allow("ip-1") {
		t.Fatal("request beyond burst should be denied")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	rl := New(1, 1)

	if !rl.Allow("ip-1") {
		t.Fatal("first request for ip-1 should be allowed")
	}
	if rl.Allow("ip-1") {
		t.Fatal("second request for ip-1 should be denied")
	}
	if !rl.Allow("ip-2") {
		t.Fatal("ip-2 has its own bucket and should be allowed")
	}
}

func TestGetLimiter_Reused(t *testing.T) {
	rl := New(5, 5)

	a := rl.getLimiter("key")
	b := rl.getLimiter("key")
	if a != b {
		t.Fatal("same key should return the same limiter")
	}
}
