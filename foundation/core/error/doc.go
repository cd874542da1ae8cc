// Package error provides structured errors for radscene.
//
// Package: error
// Title: radscene Error Handling
// Description: Structured error type with codes, severity levels, details and
//              the operation that failed. Used by every I/O collaborator around
//              the parser (source, store, render, watch, config). The parser
//              core itself never returns errors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Scene-processing codes, dropped localization and stack pooling
//
// Usage:
//   import mdwerror "github.com/msto63/radscene/foundation/core/error"
//
//   err := mdwerror.Wrap(ioErr, "failed to read scene file").
//     WithCode(mdwerror.CodeFileRead).
//     WithDetail("path", path).
//     WithOperation("source.Read")
//
//   if mdwerror.HasCode(err, mdwerror.CodeFileRead) {
//     // report unreadable input
//   }
package error
