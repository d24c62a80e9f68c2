package sheets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	t.Run("strips byte order mark", func(t *testing.T) {
		header, _, err := parseCSV(strings.NewReader("\ufeffTimestamp,Room No\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Timestamp", "Room No"}, header)
	})

	t.Run("ragged rows", func(t *testing.T) {
		header, records, err := parseCSV(strings.NewReader("a,b,c\n1\n1,2,3,4\n"))
		require.NoError(t, err)
		assert.Len(t, header, 3)
		require.Len(t, records, 2)

		_, ok := records[0].Get(2)
		assert.False(t, ok)
		v, ok := records[1].Get(3)
		assert.True(t, ok)
		assert.Equal(t, "4", v)
	})

	t.Run("multiline quoted answer", func(t *testing.T) {
		_, records, err := parseCSV(strings.NewReader("Room No,damage\n101,\"crack,\nleak\"\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		v, _ := records[0].Get(1)
		assert.Equal(t, "crack,\nleak", v)
	})

	t.Run("missing value markers", func(t *testing.T) {
		_, records, err := parseCSV(strings.NewReader("a,b,c,d\nNA,#N/A, ,ok\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		for i := 0; i < 3; i++ {
			_, ok := records[0].Get(i)
			assert.False(t, ok, "column %d", i)
		}
		_, ok := records[0].Get(3)
		assert.True(t, ok)
	})

	t.Run("header only", func(t *testing.T) {
		header, records, err := parseCSV(strings.NewReader("a,b\n"))
		require.NoError(t, err)
		assert.Len(t, header, 2)
		assert.Empty(t, records)
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := parseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, errEmptySheet)
	})
}
