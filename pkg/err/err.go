package errprocess

import (
	"errors"

	"job_board_service/pkg/logger"
)

// Set logs errMsg and returns it as an error.
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}
