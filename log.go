// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"

	"go.uber.org/zap"
)

// logf does nothing until setLogger is called so that log messages
// are discarded in tests and before the configuration is read.
var logf = func(format string, v ...interface{}) {}

// warnf is logf for problems the user may want to fix.
var warnf = func(format string, v ...interface{}) {}

// sugar is the logger behind logf and warnf, nil until setLogger.
var sugar *zap.SugaredLogger

// setLogger routes logf and warnf to the given logger.
func setLogger(s *zap.SugaredLogger) {
	sugar = s
	logf = s.Infof
	warnf = s.Warnf
}

// newLogger builds a zap logger from the log configuration. Development
// loggers are console encoded with caller information, production loggers
// write json to stderr.
func newLogger(lc LogConfig, development bool) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", lc.Level, err)
	}
	config := zap.NewProductionConfig()
	if development || lc.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = level
	config.Sampling = nil
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
