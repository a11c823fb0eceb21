package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFetcher_ClientTimeout(t *testing.T) {
	t.Parallel()

	t.Run("no timeout unless configured", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, NewFetcher().client.Timeout)
	})

	t.Run("uses the configured timeout", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 3*time.Second, NewFetcher(WithTimeout(3*time.Second)).client.Timeout)
	})
}
