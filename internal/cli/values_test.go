package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodeshim/internal/model"
)

func TestParseHostPort(t *testing.T) {
	t.Parallel()

	cur := model.HostPort{Host: "127.0.0.1", Port: 9229}
	tests := []struct {
		in   string
		want model.HostPort
	}{
		{"", cur},
		{"9230", model.HostPort{Host: "127.0.0.1", Port: 9230}},
		{"example.test", model.HostPort{Host: "example.test", Port: 9229}},
		{"example.test:1234", model.HostPort{Host: "example.test", Port: 1234}},
		{":4000", model.HostPort{Host: "127.0.0.1", Port: 4000}},
		{"0.0.0.0:", model.HostPort{Host: "0.0.0.0", Port: 9229}},
		{"[::1]", model.HostPort{Host: "[::1]", Port: 9229}},
		{"[::1]:9230", model.HostPort{Host: "[::1]", Port: 9230}},
		{"::1", model.HostPort{Host: "[::1]", Port: 9229}},
		{"fe80::1:2", model.HostPort{Host: "[fe80::1:2]", Port: 9229}},
	}

	for _, tc := range tests {
		got, err := parseHostPort(tc.in, cur)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseHostPort_Invalid(t *testing.T) {
	t.Parallel()

	cur := model.HostPort{Host: "127.0.0.1", Port: 9229}

	_, err := parseHostPort("host:12ab", cur)
	assert.ErrorIs(t, err, errPortNotNumber)

	_, err = parseHostPort("1023", cur)
	assert.ErrorIs(t, err, errPortRange)

	_, err = parseHostPort("99999999999999999999", cur)
	assert.ErrorIs(t, err, errPortNotNumber)
}
