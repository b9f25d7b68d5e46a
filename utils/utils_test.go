package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateRegistryCode(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 2, 28, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	code := GenerateRegistryCode(at)

	require.Regexp(t, regexp.MustCompile(`^OBJ-20260301-[0-9A-F]{8}$`), code)
	require.NotEqual(t, code, GenerateRegistryCode(at))
}

func TestGenerateID_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("debug"))
	require.NoError(t, SetLevel("info"))
	require.Error(t, SetLevel("loud"))
}
