package id

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	v := New(PrefixZone)
	parts := strings.Split(v, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "ZONE", parts[0])
	_, err := strconv.ParseInt(parts[1], 10, 64)
	assert.NoError(t, err)
	assert.Len(t, parts[2], 9)
	assert.Equal(t, strings.ToLower(parts[2]), parts[2])
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		v := New(PrefixTransaction)
		_, dup := seen[v]
		require.False(t, dup, "duplicate id %s", v)
		seen[v] = struct{}{}
	}
}
