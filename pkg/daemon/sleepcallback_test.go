package daemon

import (
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeWatcherHandle(t *testing.T) {
	tests := []struct {
		name string
		sig  *dbus.Signal
		want string
	}{
		{
			name: "resume re-applies",
			sig:  &dbus.Signal{Name: prepareForSleepName, Body: []interface{}{false}},
			want: "60",
		},
		{
			name: "going to sleep is ignored",
			sig:  &dbus.Signal{Name: prepareForSleepName, Body: []interface{}{true}},
			want: "100",
		},
		{
			name: "other signal is ignored",
			sig:  &dbus.Signal{Name: login1Interface + ".SessionNew", Body: []interface{}{"c1", dbus.ObjectPath("/")}},
			want: "100",
		},
		{
			name: "malformed body is ignored",
			sig:  &dbus.Signal{Name: prepareForSleepName},
			want: "100",
		},
		{
			name: "nil",
			want: "100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.writeConfig(t, "60")

			w := &ResumeWatcher{applier: h.applier()}
			w.handle(tt.sig)
			assert.Equal(t, tt.want, h.controlValue(t))
		})
	}
}

func TestResumeWatcherHandleWithoutControl(t *testing.T) {
	h := newHarness(t)
	h.writeConfig(t, "60")
	require.NoError(t, os.Remove(h.control))

	w := &ResumeWatcher{applier: h.applier()}
	assert.NotPanics(t, func() {
		w.handle(&dbus.Signal{Name: prepareForSleepName, Body: []interface{}{false}})
	})
}
