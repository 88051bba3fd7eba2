package generator

import (
	"testing"

	"github.com/hhkbp2/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("bigrams")
	require.Nil(t, err)
	require.Equal(t, ModeBigram, m)
	require.Equal(t, "", m.Separator())
	m, err = ParseMode("word")
	require.Nil(t, err)
	require.Equal(t, ModeWord, m)
	require.Equal(t, " ", m.Separator())
	require.Equal(t, "word", m.String())
	_, err = ParseMode("trigram")
	require.True(t, IsInvalidArgument(err))
	require.Equal(t, "UNKNOWN_MODE", Mode(0).String())
}
