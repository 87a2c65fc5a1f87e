package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across the formatter.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldPhase     = "phase"

	// Schema entities
	FieldSchema     = "schema"
	FieldClass      = "class"
	FieldSlot       = "slot"
	FieldEnum       = "enum"
	FieldElement    = "element"
	FieldType       = "type"
	FieldConstraint = "constraint"

	// Files and paths
	FieldFile   = "file"
	FieldOutput = "output"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount      = "count"
	FieldTotalCount = "total_count"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type TypeProcessor struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewTypeProcessor() *TypeProcessor {
//	    return &TypeProcessor{
//	        logger: logger.ComponentLogger("convert.types"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	classLogger := logger.ChildLogger(baseLogger, "class", class.Name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
