package actions

import (
	anyaction "github.com/Ramsey-B/fern/pkg/actions/any"
	"github.com/Ramsey-B/fern/pkg/actions/number"
	"github.com/Ramsey-B/fern/pkg/actions/registry"
	"github.com/Ramsey-B/fern/pkg/actions/text"
	"github.com/Ramsey-B/fern/pkg/models"
)

// Keys are the function names used in mutate expressions.
const (
	// Any/Conditional Action Keys
	AnyCoalesceAction = "coalesce"
	AnyIfElseAction   = "if_else"
	AnyIsNAAction     = "is_na"
	AnyToStringAction = "as_character"

	// Number Action Keys
	NumberAbsAction     = "abs"
	NumberCeilingAction = "ceiling"
	NumberClampAction   = "clamp"
	NumberExpAction     = "exp"
	NumberFloorAction   = "floor"
	NumberLogAction     = "log"
	NumberMaxAction     = "max"
	NumberMinAction     = "min"
	NumberPowAction     = "pow"
	NumberRoundAction   = "round"
	NumberSignAction    = "sign"
	NumberSqrtAction    = "sqrt"

	// Text Action Keys
	TextConcatAction  = "paste"
	TextLengthAction  = "nchar"
	TextToLowerAction = "tolower"
	TextToUpperAction = "toupper"
	TextTrimAction    = "trim"
)

type ActionDefinition struct {
	Key         string                  `json:"key" validate:"required"`
	Name        string                  `json:"name" validate:"required"`
	Description string                  `json:"description" validate:"required"`
	InputRules  models.ActionInputRules `json:"input_rules" validate:"required"`
	Factory     registry.ActionFactory  `json:"-"`
}

var ActionDefinitions = map[string]ActionDefinition{
	// Any/Conditional Action Keys
	AnyCoalesceAction: {
		Key:         AnyCoalesceAction,
		Name:        "Coalesce",
		Description: "Returns the first non-missing value from the inputs",
		InputRules:  anyaction.CoalesceRules,
		Factory:     anyaction.NewCoalesceAction,
	},
	AnyIfElseAction: {
		Key:         AnyIfElseAction,
		Name:        "If-Else",
		Description: "Returns 'then' if the condition is true, otherwise 'else'; NA when the condition is NA",
		InputRules:  anyaction.IfElseRules,
		Factory:     anyaction.NewIfElseAction,
	},
	AnyIsNAAction: {
		Key:         AnyIsNAAction,
		Name:        "Is NA",
		Description: "Checks if a value is missing",
		InputRules:  anyaction.IsNARules,
		Factory:     anyaction.NewIsNAAction,
	},
	AnyToStringAction: {
		Key:         AnyToStringAction,
		Name:        "As Character",
		Description: "Converts a value to a string",
		InputRules:  anyaction.ToStringRules,
		Factory:     anyaction.NewToStringAction,
	},

	// Number Action Keys
	NumberAbsAction: {
		Key:         NumberAbsAction,
		Name:        "Absolute",
		Description: "Returns the absolute value of a number",
		InputRules:  number.NumberAbsRules,
		Factory:     number.NewNumberAbsAction,
	},
	NumberCeilingAction: {
		Key:         NumberCeilingAction,
		Name:        "Ceiling",
		Description: "Rounds a number up to the nearest integer",
		InputRules:  number.NumberCeilingRules,
		Factory:     number.NewNumberCeilingAction,
	},
	NumberClampAction: {
		Key:         NumberClampAction,
		Name:        "Clamp",
		Description: "Clamps a number between a lower and upper bound",
		InputRules:  number.NumberClampRules,
		Factory:     number.NewNumberClampAction,
	},
	NumberExpAction: {
		Key:         NumberExpAction,
		Name:        "Exponential",
		Description: "Raises e to the power of a number",
		InputRules:  number.NumberExpRules,
		Factory:     number.NewNumberExpAction,
	},
	NumberFloorAction: {
		Key:         NumberFloorAction,
		Name:        "Floor",
		Description: "Rounds a number down to the nearest integer",
		InputRules:  number.NumberFloorRules,
		Factory:     number.NewNumberFloorAction,
	},
	NumberLogAction: {
		Key:         NumberLogAction,
		Name:        "Logarithm",
		Description: "Natural logarithm, or the logarithm in the given base",
		InputRules:  number.NumberLogRules,
		Factory:     number.NewNumberLogAction,
	},
	NumberMaxAction: {
		Key:         NumberMaxAction,
		Name:        "Max",
		Description: "Returns the row-wise maximum of the inputs",
		InputRules:  number.NumberMaxRules,
		Factory:     number.NewNumberMaxAction,
	},
	NumberMinAction: {
		Key:         NumberMinAction,
		Name:        "Min",
		Description: "Returns the row-wise minimum of the inputs",
		InputRules:  number.NumberMinRules,
		Factory:     number.NewNumberMinAction,
	},
	NumberPowAction: {
		Key:         NumberPowAction,
		Name:        "Power",
		Description: "Raises a number to the power of another number",
		InputRules:  number.NumberPowRules,
		Factory:     number.NewNumberPowAction,
	},
	NumberRoundAction: {
		Key:         NumberRoundAction,
		Name:        "Round",
		Description: "Rounds a number to the given number of digits, half to even",
		InputRules:  number.NumberRoundRules,
		Factory:     number.NewNumberRoundAction,
	},
	NumberSignAction: {
		Key:         NumberSignAction,
		Name:        "Sign",
		Description: "Returns -1, 0, or 1 based on the sign of the number",
		InputRules:  number.NumberSignRules,
		Factory:     number.NewNumberSignAction,
	},
	NumberSqrtAction: {
		Key:         NumberSqrtAction,
		Name:        "Square Root",
		Description: "Calculates the square root of a number",
		InputRules:  number.NumberSqrtRules,
		Factory:     number.NewNumberSqrtAction,
	},

	// Text Action Keys
	TextConcatAction: {
		Key:         TextConcatAction,
		Name:        "Paste",
		Description: "Joins the inputs with a space",
		InputRules:  text.TextConcatRules,
		Factory:     text.NewTextConcatAction,
	},
	TextLengthAction: {
		Key:         TextLengthAction,
		Name:        "Character Count",
		Description: "Returns the number of characters in a text",
		InputRules:  text.TextLengthRules,
		Factory:     text.NewTextLengthAction,
	},
	TextToLowerAction: {
		Key:         TextToLowerAction,
		Name:        "To Lower",
		Description: "Converts a text to lowercase",
		InputRules:  text.TextToLowerRules,
		Factory:     text.NewTextToLowerAction,
	},
	TextToUpperAction: {
		Key:         TextToUpperAction,
		Name:        "To Upper",
		Description: "Converts a text to uppercase",
		InputRules:  text.TextToUpperRules,
		Factory:     text.NewTextToUpperAction,
	},
	TextTrimAction: {
		Key:         TextTrimAction,
		Name:        "Trim",
		Description: "Removes leading and trailing whitespace",
		InputRules:  text.TextTrimRules,
		Factory:     text.NewTextTrimAction,
	},
}

func init() {
	for _, action := range ActionDefinitions {
		registry.Actions[action.Key] = action.Factory
	}
}
