package order

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommaCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		{"pen"},
		{"pen", "notebook"},
		{"a", "b", "c", "d"},
		{" spaced ", "  "},
		{"", "x"},
		{"ünïcödé", "日本語"},
	}

	codec := CommaCodec{}
	for _, items := range cases {
		joined, err := codec.Join(items)
		require.NoError(t, err)

		split, err := codec.Split(joined)
		require.NoError(t, err)
		assert.Equal(t, items, split, "joined=%q", joined)
	}
}

func TestCommaCodec_Boundaries(t *testing.T) {
	t.Parallel()

	codec := CommaCodec{}

	joined, err := codec.Join([]string{})
	require.NoError(t, err)
	assert.Equal(t, "", joined)

	joined, err = codec.Join(nil)
	require.NoError(t, err)
	assert.Equal(t, "", joined)

	split, err := codec.Split("")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, split)
}

func TestCommaCodec_ItemWithSeparatorDoesNotRoundTrip(t *testing.T) {
	t.Parallel()

	codec := CommaCodec{}
	joined, err := codec.Join([]string{"pens, blue", "ink"})
	require.NoError(t, err)
	assert.Equal(t, "pens, blue,ink", joined)

	split, err := codec.Split(joined)
	require.NoError(t, err)
	assert.Equal(t, []string{"pens", " blue", "ink"}, split)
}

func TestJSONCodec_RoundTripWithSeparator(t *testing.T) {
	t.Parallel()

	codec := JSONCodec{}
	items := []string{"pens, blue", "ink", ""}

	joined, err := codec.Join(items)
	require.NoError(t, err)
	assert.Equal(t, `["pens, blue","ink",""]`, joined)

	split, err := codec.Split(joined)
	require.NoError(t, err)
	assert.Equal(t, items, split)
}

func TestJSONCodec_Empty(t *testing.T) {
	t.Parallel()

	codec := JSONCodec{}

	joined, err := codec.Join(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", joined)

	for _, stored := range []string{"", "[]", "null"} {
		split, err := codec.Split(stored)
		require.NoError(t, err)
		assert.Empty(t, split)
		assert.NotNil(t, split)
	}
}

func TestJSONCodec_DecodeFailure(t *testing.T) {
	t.Parallel()

	_, err := JSONCodec{}.Split("pen,notebook")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrItemsDecode))
}

func TestCodecFor(t *testing.T) {
	t.Parallel()

	codec, err := CodecFor("comma")
	require.NoError(t, err)
	assert.IsType(t, CommaCodec{}, codec)

	codec, err = CodecFor("")
	require.NoError(t, err)
	assert.IsType(t, CommaCodec{}, codec)

	codec, err = CodecFor("json")
	require.NoError(t, err)
	assert.IsType(t, JSONCodec{}, codec)

	_, err = CodecFor("csv")
	require.Error(t, err)
}
