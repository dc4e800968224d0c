package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHitIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	raw := []byte(`{"hits":[{"id":"` + a.String() + `"},{"id":"broken"},{"id":"` + b.String() + `"}],"query":"acme"}`)

	ids, err := decodeHitIDs(raw)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestDecodeHitIDsMalformed(t *testing.T) {
	_, err := decodeHitIDs([]byte(`{"hits":`))
	assert.Error(t, err)
}
