package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractServiceTypeID(t *testing.T) {
	cases := []struct {
		namespace string
		want      string
	}{
		{"arplanets.livesight.ls_123", "ls_123"},
		{"livesight.ls_9", "ls_9"},
		{"arplanets.livesight.ls_1.extra", "ls_1"},
		{"arplanets.livesight", ""},
		{"arplanets.other.ls_1", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractServiceTypeID(tc.namespace), "namespace %q", tc.namespace)
	}
}
