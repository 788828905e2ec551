package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFilterFromQuery(t *testing.T) {
	t.Run("open range", func(t *testing.T) {
		filter, err := scanFilterFromQuery("", "")
		require.NoError(t, err)
		assert.Nil(t, filter.From)
		assert.Nil(t, filter.To)
	})

	t.Run("bounded range", func(t *testing.T) {
		filter, err := scanFilterFromQuery("2024-03-15", "2024-03-16")
		require.NoError(t, err)

		require.NotNil(t, filter.From)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *filter.From)

		// Upper bound is exclusive and covers the whole "to" day
		require.NotNil(t, filter.To)
		assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), *filter.To)
	})

	t.Run("single day", func(t *testing.T) {
		filter, err := scanFilterFromQuery("2024-03-15", "2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, filter.To.Sub(*filter.From))
	})

	t.Run("bad from", func(t *testing.T) {
		_, err := scanFilterFromQuery("15/03/2024", "")
		assert.Error(t, err)
	})

	t.Run("bad to", func(t *testing.T) {
		_, err := scanFilterFromQuery("", "yesterday")
		assert.Error(t, err)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := scanFilterFromQuery("2024-03-16", "2024-03-15")
		assert.Error(t, err)
	})
}
