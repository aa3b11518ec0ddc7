package utils

import "go.uber.org/zap"

// Log is the process-wide structured logger. It is a no-op logger until InitLogger runs.
var Log = zap.NewNop()

// InitLogger replaces Log with a production logger.
func InitLogger() (*zap.Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	Log = l
	return l, nil
}
