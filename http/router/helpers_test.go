package router_test

import "github.com/xy-planning-network/relay/logger"

type discard struct{}

func (discard) Debug(string, *logger.LogContext) {}
func (discard) Error(string, *logger.LogContext) {}
func (discard) Fatal(string, *logger.LogContext) {}
func (discard) Info(string, *logger.LogContext)  {}
func (discard) Warn(string, *logger.LogContext)  {}
func (discard) LogLevel() logger.LogLevel        { return logger.LogLevelDebug }
