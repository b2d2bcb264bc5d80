package rate

import (
	"context"
	"testing"
	"time"
)

func TestNewLimiter_DefaultsBadRates(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"positive rate kept", 250.0, 250.0},
		{"zero rate defaults to 1", 0, 1.0},
		{"negative rate defaults to 1", -5, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLimiter(tt.rate).Rate(); got != tt.want {
				t.Errorf("Rate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLimiter_FirstAdmissionImmediate(t *testing.T) {
	l := NewLimiter(100)

	if d := time.Until(l.Next()); d > 10*time.Millisecond {
		t.Errorf("first Next() delayed by %v, want immediate", d)
	}
}

func TestLimiter_SpacesAdmissionsAtRate(t *testing.T) {
	l := NewLimiter(100) // 10ms apart
	_ = l.Next()

	d := time.Until(l.Next())
	if d < 5*time.Millisecond || d > 15*time.Millisecond {
		t.Errorf("second admission in %v, want ~10ms", d)
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001) // ~17 minutes between admissions
	_ = l.Next()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait() = %v, want context.DeadlineExceeded", err)
	}
}
