package pipeline

import "errors"

var (
	ErrOpenInput   = errors.New("failed to open input file")
	ErrScanInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write report")
)
