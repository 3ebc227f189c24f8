package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// runWithTimeout calls Run and fails the test if it does not return in time.
func runWithTimeout(t *testing.T, ctx context.Context, saver Saver, in io.Reader) error {
	t.Helper()
	b := testBook(t)
	done := make(chan error, 1)
	go func() {
		var out bytes.Buffer
		done <- Run(ctx, b, saver, in, &out)
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRun_CancelledContextSavesAndSucceeds(t *testing.T) {
	// Given a context that is already cancelled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	saver := &recordingSaver{}

	// When the browser runs
	err := runWithTimeout(t, ctx, saver, strings.NewReader(""))

	// Then it exits cleanly after saving the book once
	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if saver.count() != 1 {
		t.Errorf("saves = %d, want 1", saver.count())
	}
	if len(saver.last) != 3 {
		t.Errorf("saved %d contacts, want 3", len(saver.last))
	}
}

func TestRun_QuitKeySaves(t *testing.T) {
	saver := &recordingSaver{}

	err := runWithTimeout(t, context.Background(), saver, strings.NewReader("q"))

	if err != nil {
		t.Fatalf("Run() error = %v, want nil", err)
	}
	if saver.count() != 1 {
		t.Errorf("saves = %d, want 1", saver.count())
	}
}

func TestRun_FinalSaveErrorReturned(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	saver := &recordingSaver{err: errors.New("disk full")}

	err := runWithTimeout(t, ctx, saver, strings.NewReader(""))

	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Run() error = %v, want the save error", err)
	}
}
