package cmd

import (
	"github.com/halmstraw/finance-app-dsl/lang"
)

var (
	// ErrCheckFailed reports error-severity diagnostics in the source.
	ErrCheckFailed = lang.NewError("source failed validation")

	// ErrWriteOutput reports a failure writing generated files.
	ErrWriteOutput = lang.NewError("write generated output")

	// ErrWriteConfig reports a failure writing the configuration file.
	ErrWriteConfig = lang.NewError("write configuration file")

	// ErrFileExists guards against clobbering an existing configuration.
	ErrFileExists = lang.NewError("file exists (use --force to overwrite)")
)
