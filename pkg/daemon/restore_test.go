package daemon

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bctrl/batteryd/pkg/protocol"
)

func TestRestore(t *testing.T) {
	tests := []struct {
		name        string
		config      *string
		wantControl string
		wantConfig  string
	}{
		{name: "no config", config: nil, wantControl: "100"},
		{name: "empty config", config: strPtr(""), wantControl: "100", wantConfig: ""},
		{name: "garbage config", config: strPtr("lots"), wantControl: "100", wantConfig: "lots"},
		{name: "valid", config: strPtr("72\n"), wantControl: "72", wantConfig: "72"},
		{name: "lower bound", config: strPtr("50"), wantControl: "50", wantConfig: "50"},
		{name: "too small heals", config: strPtr("49"), wantControl: "100", wantConfig: "100"},
		{name: "too large heals", config: strPtr("128"), wantControl: "100", wantConfig: "100"},
		{name: "overflow heals", config: strPtr("99999999999999999999"), wantControl: "100", wantConfig: "100"},
		{name: "negative overflow heals", config: strPtr("-99999999999999999999"), wantControl: "100", wantConfig: "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, os.WriteFile(h.control, []byte("100"), 0o644))
			if tt.config != nil {
				h.writeConfig(t, *tt.config)
			}

			require.NoError(t, Restore(h.applier()))
			assert.Equal(t, tt.wantControl, h.controlValue(t))
			if tt.config != nil {
				assert.Equal(t, tt.wantConfig, h.configValue(t))
			}
		})
	}
}

func TestRestoreUnwritableControl(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.Remove(h.control))
	h.writeConfig(t, "80")

	err := Restore(h.applier())
	assert.ErrorIs(t, err, ErrControlUnwritable)
}

func TestRestoreHealUnwritableControl(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.Remove(h.control))
	h.writeConfig(t, "10")

	err := Restore(h.applier())
	assert.ErrorIs(t, err, ErrControlUnwritable)
}

func TestRestoreWaitsForApplyInFlight(t *testing.T) {
	h := newHarness(t)
	h.writeConfig(t, "60")
	a := h.applier()

	// Hold the applier as a set request would while it writes.
	a.mu.Lock()
	done := make(chan error, 1)
	go func() {
		done <- Restore(a)
	}()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, protocol.StatusSuccess, a.apply(80))
	a.mu.Unlock()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("restore did not finish")
	}
	assert.Equal(t, "80", h.controlValue(t))
	assert.Equal(t, "80", h.configValue(t))
}

func TestRestoreConcurrentWithApply(t *testing.T) {
	h := newHarness(t)
	h.writeConfig(t, "60")
	a := h.applier()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			a.Apply(v)
		}(50 + i)
		go func() {
			defer wg.Done()
			_ = Restore(a)
		}()
	}
	wg.Wait()

	assert.Equal(t, h.configValue(t), h.controlValue(t))
}

func strPtr(s string) *string { return &s }
