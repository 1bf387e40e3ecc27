package config

import "errors"

var (
	ErrReadingConfigFile   = errors.New("failed to read config file")
	ErrUnmarshallingConfig = errors.New("failed to unmarshal config")
	ErrBindingFlags        = errors.New("failed to bind command-line flags")
	ErrEmptyInputPath      = errors.New("input path cannot be empty")
	ErrEmptyReportPath     = errors.New("report path cannot be empty")
	ErrConfigFileMissing   = errors.New("config file not found")
)
