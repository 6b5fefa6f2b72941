package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestSafelyRun(t *testing.T) {
	if err := SafelyRun(func() {}); err != nil {
		t.Fatalf("err = %v", err)
	}

	boom := errors.New("boom")
	err := SafelyRun(func() { panic(boom) })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}

	err = SafelyRun(func() { panic("bad") })
	if err == nil || !strings.HasPrefix(err.Error(), "panic: bad") {
		t.Fatalf("err = %v", err)
	}
}

func TestSafelyGo(t *testing.T) {
	done := make(chan error, 1)
	SafelyGo(func() { panic("bad") }, func(err error) { done <- err })
	if err := <-done; err == nil {
		t.Fatal("handler got nil error")
	}
}
