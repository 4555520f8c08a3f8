package collections_test

import (
	"strings"
	"testing"

	"github.com/alkime/coach/pkg/collections"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	lengths := collections.Apply([]string{"a", "bb", "ccc"}, func(s string) int { return len(s) })
	require.Equal(t, []int{1, 2, 3}, lengths)

	upper := collections.Apply([]string{"gemini", "openai"}, strings.ToUpper)
	require.Equal(t, []string{"GEMINI", "OPENAI"}, upper)

	require.Empty(t, collections.Apply(nil, strings.ToUpper))
}
