package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPGStoreCloseWithoutListen(t *testing.T) {
	var s PGStore
	assert.NoError(t, s.Close())
}
