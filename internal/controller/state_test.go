package controller

import (
	"sync"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState(DefaultSetpoint)
	if s.Setpoint() != 70 {
		t.Errorf("Setpoint: got %d, want 70", s.Setpoint())
	}
	if s.Current() != 0 {
		t.Errorf("Current: got %d, want 0", s.Current())
	}
}

func TestStateAdjustReturnsNewValue(t *testing.T) {
	s := NewState(70)
	if got := s.AdjustSetpoint(-2); got != 68 {
		t.Errorf("after -2: got %d, want 68", got)
	}
	if got := s.AdjustSetpoint(4); got != 72 {
		t.Errorf("after +4: got %d, want 72", got)
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	s := NewState(70)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AdjustSetpoint(2)
		}()
		go func(i int) {
			defer wg.Done()
			s.SetCurrent(60)
			_ = s.Setpoint()
			_ = s.Current()
		}(i)
	}
	wg.Wait()

	if s.Setpoint() != 270 {
		t.Errorf("Setpoint: got %d, want 270", s.Setpoint())
	}
	if s.Current() != 60 {
		t.Errorf("Current: got %d, want 60", s.Current())
	}
}
