package paymenter

import (
	"errors"
	"fmt"
	"testing"
)

// Declining a confirmation exits cleanly; every other error passes through.
func TestGracefulCancellation(t *testing.T) {
	if err := graceful(ErrUserCancelled); err != nil {
		t.Errorf("direct cancellation surfaced as error: %v", err)
	}
	if err := graceful(fmt.Errorf("remove: %w", ErrUserCancelled)); err != nil {
		t.Errorf("wrapped cancellation surfaced as error: %v", err)
	}
	if err := graceful(nil); err != nil {
		t.Errorf("nil mapped to %v", err)
	}

	boom := errors.New("disk full")
	if err := graceful(boom); !errors.Is(err, boom) {
		t.Errorf("real error was swallowed: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := Run([]string{"frobnicate"}); err == nil {
		t.Fatal("unknown command accepted")
	}
}
