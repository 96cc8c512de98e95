// Package logger provides a structured logging facility based on Zap.
//
// New builds a production (json) or development configuration from Config;
// the console format switches to the coloured console encoder without stack
// traces, which is what the CLI uses.
//
// # Request Correlation
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber
// context and attaches it to the logger, so every log line of one API
// request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Loaded preset", zap.String("path", path))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
