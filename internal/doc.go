// Package internal contains the implementation packages of keywordmerge.
//
// # Package Organization
//
//   - literal: safe parser for the Python-style record literals
//   - merge: record extraction, fallback splitting and accumulation
//   - output: JSON and YAML encoding of the merged result, run summaries
//   - config: viper backed configuration with validation
//   - errors: structured errors and the per-run error collector
//   - logging: slog based structured logging
//   - version: build information
//   - testutils: fixtures shared by the package tests
//
// Data flows one way: the processor in merge reads each input line, parses
// it with literal, extracts a contribution and adds it to an accumulator.
// The accumulated result is handed to output once every file is read.
package internal
