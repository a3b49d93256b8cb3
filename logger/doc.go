// Package logger provides structured logging for skry applications using
// zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.NewDefault("skry")
//	log.WithComponent("di").Info("provider registered", logger.Fields("token", tok))
package logger
