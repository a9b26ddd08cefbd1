package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_Run_TriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "components.txt")
	if err := os.WriteFile(path, []byte("initial"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	w := New(path, nil)
	stop := make(chan struct{})
	fired := make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- w.Run(stop, func() error {
			select {
			case fired <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Give fsnotify time to register watches before the first write.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for onChange to fire")
	}

	close(stop)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Run to return after stop")
	}
}
