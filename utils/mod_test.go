package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	s, ok := Remove([]int{4, 2, 7, 2}, 2)
	require.True(t, ok)
	require.Equal(t, []int{4, 7, 2}, s, "Only the first occurrence is removed")

	s, ok = Remove(s, 9)
	require.False(t, ok)
	require.Equal(t, []int{4, 7, 2}, s)
}

func TestCeilDiv(t *testing.T) {
	require.Equal(t, 72, CeilDiv(360, 5))
	require.Equal(t, 73, CeilDiv(361, 5))
	require.Equal(t, 0, CeilDiv(0, 2))
	require.Equal(t, 1, CeilDiv(1, 2))
	require.Equal(t, -1, CeilDiv(-3, 2))
}
