package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUKDate(t *testing.T) {
	expected := time.Date(1997, time.February, 27, 0, 0, 0, 0, time.UTC)

	t.Run("handles full year", func(t *testing.T) {
		parsed, err := ParseUKDate("27/2/1997")
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	})

	t.Run("handles two-digit year", func(t *testing.T) {
		parsed, err := ParseUKDate("27/2/97")
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	})

	t.Run("handles zero-padded day and month", func(t *testing.T) {
		parsed, err := ParseUKDate("27/02/1997")
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	})

	t.Run("rejects ISO format", func(t *testing.T) {
		_, err := ParseUKDate("1997-2-27")
		assert.Error(t, err)
	})

	t.Run("rejects non-dates", func(t *testing.T) {
		_, err := ParseUKDate("not a date")
		assert.Error(t, err)
	})
}
