// Package log provides structured logging for radscene.
//
// Package: log
// Title: radscene Structured Logging
// Description: Leveled, structured logger with contextual fields, request IDs,
//              several output formats and timers. Integrates with the
//              foundation error package so coded errors are logged at a level
//              matching their severity.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Dropped async buffering and user IDs, sorted text fields
//
// Usage:
//   import mdwlog "github.com/msto63/radscene/foundation/core/log"
//
//   logger := mdwlog.NewWithConfig(mdwlog.Config{
//     Level:  mdwlog.LevelDebug,
//     Format: mdwlog.FormatText,
//   }).WithField("component", "rad-parser")
//
//   logger.Info("Scene parsed", mdwlog.Fields{"records": 42})
//
//   timer := logger.StartTimer("read_sources")
//   // ... read files
//   timer.Stop()
package log
