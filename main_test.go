package main

import (
	"context"
	"io"
	"testing"

	"cafe-ordering/config"
	"cafe-ordering/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStoreMemory(t *testing.T) {
	st, closeStore, err := openStore(context.Background(), config.App{Memory: true}, zerolog.New(io.Discard))
	require.NoError(t, err)
	defer closeStore()

	_, ok := st.(*database.Memory)
	assert.True(t, ok)
}
