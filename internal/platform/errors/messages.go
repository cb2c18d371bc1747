package errors

// userMessages holds the user-facing template for each code.
var userMessages = map[Code]string{
	CodeUnknown:               "An unexpected error occurred.",
	CodeDiceExpressionEmpty:   "Please specify some dice to roll.",
	CodeDiceExpressionInvalid: `"{{.Expression}}" is not a dice expression; use [m*]NdS[+C], e.g. 3*1d20+8.`,
	CodeRerollUnbounded:       "Reroll threshold {{.Reroll}} would reroll every die forever; use a value above 1.",
	CodeRerollLimit:           "Rerolling did not settle within {{.Batches}} batches.",
	CodePresetNotFound:        `No preset named "{{.Name}}".`,
	CodePresetInvalid:         "Preset file {{.Path}} is invalid: {{.Reason}}.",
	CodeConfigInvalid:         "Invalid configuration: {{.Reason}}.",
}
