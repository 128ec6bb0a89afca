package testtool

import (
	"testing"

	"presence_relay_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestStartPprof_Disabled(t *testing.T) {
	logger.SetNewNop()
	assert.False(t, StartPprof(false, PprofAddr))
}
