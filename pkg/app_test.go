package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	ct "k8s.io/utils/clock/testing"
)

func TestNewApp(t *testing.T) {
	app := NewApp("1.1.0")
	assert.Equal(t, "cve", app.Name)

	want := []string{
		"reserve", "show", "list", "count", "publish", "update",
		"publish-adp", "reject", "undo-reject", "quota", "org", "user", "ping",
	}
	var got []string
	for _, cmd := range app.Commands {
		got = append(got, cmd.Name)
	}
	assert.Equal(t, want, got)
}

func TestReserveYearDefault(t *testing.T) {
	restore := Clock
	Clock = ct.NewFakePassiveClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	defer func() { Clock = restore }()

	app := NewApp("1.1.0")
	reserveCmd := app.Command("reserve")
	require.NotNil(t, reserveCmd)

	var yearDefault string
	for _, flag := range reserveCmd.Flags {
		if sf, ok := flag.(cli.StringFlag); ok && sf.Name == "year" {
			yearDefault = sf.Value
		}
	}
	assert.Equal(t, "2024", yearDefault)
}
