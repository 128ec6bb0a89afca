package errprocess

import (
	"errors"
	"testing"

	"presence_relay_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	logger.SetNewNop()

	err := Set("port is required")
	assert.EqualError(t, err, "port is required")
}

func TestWrap(t *testing.T) {
	logger.SetNewNop()
	base := errors.New("unknown tap driver")

	err := Wrap(base, "driver \"nats\"")
	assert.ErrorIs(t, err, base)
	assert.EqualError(t, err, "unknown tap driver: driver \"nats\"")
}
