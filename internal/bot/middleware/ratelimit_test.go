package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksAboveLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow(1) {
			t.Fatalf("mensaje %d dentro del límite fue rechazado", i+1)
		}
	}
	if rl.Allow(1) {
		t.Error("el cuarto mensaje debe rechazarse")
	}
}

func TestRateLimiterIsPerUser(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()

	if !rl.Allow(1) {
		t.Fatal("primer mensaje del usuario 1 rechazado")
	}
	if !rl.Allow(2) {
		t.Error("el límite del usuario 1 no debe afectar al usuario 2")
	}
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 20*time.Millisecond)
	defer rl.Close()

	if !rl.Allow(1) {
		t.Fatal("primer mensaje rechazado")
	}
	if rl.Allow(1) {
		t.Fatal("segundo mensaje inmediato debe rechazarse")
	}
	time.Sleep(30 * time.Millisecond)
	if !rl.Allow(1) {
		t.Error("pasada la ventana el usuario vuelve a tener cupo")
	}
}
