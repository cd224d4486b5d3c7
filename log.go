package resample

import (
	"github.com/akeil/resample/internal/logging"
)

// SetLogLevel sets the log level by name.
// Valid names are debug, info, warning, error and none.
// An unknown name disables logging and returns an error.
func SetLogLevel(level string) error {
	lvl, err := logging.ParseLevel(level)
	logging.SetLevel(lvl)
	return err
}
