// Package errors provides structured, coded errors for the dice-pool tools.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dice errors
	CodeDiceExpressionEmpty   Code = "DICE_EXPRESSION_EMPTY"
	CodeDiceExpressionInvalid Code = "DICE_EXPRESSION_INVALID"
	CodeRerollUnbounded       Code = "REROLL_UNBOUNDED"
	CodeRerollLimit           Code = "REROLL_LIMIT"

	// Preset errors
	CodePresetNotFound Code = "PRESET_NOT_FOUND"
	CodePresetInvalid  Code = "PRESET_INVALID"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

// Category groups codes by how a caller should react to them.
type Category int

const (
	// CategoryInternal covers unexpected failures.
	CategoryInternal Category = iota
	// CategoryInvalidArgument covers bad input the caller can fix.
	CategoryInvalidArgument
	// CategoryNotFound covers lookups that matched nothing.
	CategoryNotFound
	// CategoryResourceExhausted covers operations stopped by a limit.
	CategoryResourceExhausted
)

// Category maps a code to its category.
func (c Code) Category() Category {
	switch c {
	case CodeDiceExpressionEmpty,
		CodeDiceExpressionInvalid,
		CodeRerollUnbounded,
		CodePresetInvalid,
		CodeConfigInvalid:
		return CategoryInvalidArgument
	case CodePresetNotFound:
		return CategoryNotFound
	case CodeRerollLimit:
		return CategoryResourceExhausted
	default:
		return CategoryInternal
	}
}

// ExitCode maps a code to a process exit status for CLI entry points.
func (c Code) ExitCode() int {
	switch c.Category() {
	case CategoryInvalidArgument:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryResourceExhausted:
		return 4
	default:
		return 1
	}
}
