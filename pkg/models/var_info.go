package models

import (
	"fmt"

	"github.com/Gobusters/ectolinq"
)

// Role is the part a column plays in a model.
type Role string

const (
	RolePredictor Role = "predictor"
	RoleOutcome   Role = "outcome"
	RoleOther     Role = "other"
)

var Roles = []Role{RolePredictor, RoleOutcome, RoleOther}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !ectolinq.Contains(Roles, r) {
		return "", fmt.Errorf("unknown role '%s'", s)
	}
	return r, nil
}

// Source records whether a column was present in the raw data or produced by a step.
type Source string

const (
	SourceOriginal Source = "original"
	SourceDerived  Source = "derived"
)

// VarInfo is one row of the schema table handed to a step at prep time.
//
// Example JSON:
//
//	{"variable": "age", "type": "integer", "role": "predictor", "source": "original"}
type VarInfo struct {
	Variable string    `json:"variable" yaml:"variable" validate:"required"`
	Type     ValueType `json:"type" yaml:"type" validate:"required,oneof=double integer string logical"`
	Role     Role      `json:"role" yaml:"role" validate:"required,oneof=predictor outcome other"`
	Source   Source    `json:"source" yaml:"source" validate:"omitempty,oneof=original derived"`
}

// VarInfos is the full schema table in column order.
type VarInfos []VarInfo

// Names returns the variable names in table order.
func (v VarInfos) Names() []string {
	return ectolinq.Map(v, func(info VarInfo) string { return info.Variable })
}

// Find returns the row for a variable.
func (v VarInfos) Find(name string) (VarInfo, bool) {
	for _, info := range v {
		if info.Variable == name {
			return info, true
		}
	}
	return VarInfo{}, false
}

// Filter returns the rows matching fn, keeping table order.
func (v VarInfos) Filter(fn func(VarInfo) bool) VarInfos {
	return ectolinq.Filter(v, fn)
}

// ToMaps renders the table as generic rows, used by jmespath selectors.
func (v VarInfos) ToMaps() []any {
	rows := make([]any, 0, len(v))
	for _, info := range v {
		rows = append(rows, map[string]any{
			"variable": info.Variable,
			"type":     string(info.Type),
			"role":     string(info.Role),
			"source":   string(info.Source),
		})
	}
	return rows
}
