package errprocess

import (
	"errors"
	"fmt"

	"presence_relay_service/pkg/logger"
)

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// Wrap log errMsg and return it wrapped around base, so callers can still errors.Is(base)
func Wrap(base error, errMsg string) error {
	logger.Log.Error(errMsg)
	return fmt.Errorf("%w: %s", base, errMsg)
}
