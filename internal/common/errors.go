// Package common defines shared sentinel errors used across the migrator
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration surface errors.
	ErrUnknownParameter      = errors.New("unknown parameter")
	ErrInvalidParameterValue = errors.New("invalid parameter value")

	// Identifier validation (operator-supplied table names).
	ErrInvalidTableName = errors.New("invalid table name")

	// Orchestration errors.
	ErrMigrationRunning = errors.New("migration already in progress")

	// Store-level errors.
	ErrorNotFound = errors.New("not found")
)
