// Package steps implements the prep/bake preprocessing steps.
//
// # Lifecycle
//
// Every step moves through one transition:
//
//	Unprepared --Prep(training, info)--> Prepared
//
// A step is built by its constructor (NewMutate, NewNaturalSpline,
// NewImputeMedian), which only validates arguments and never looks at data.
// Prep resolves the step's selectors against the schema table once, learns
// whatever statistics the step needs from the training frame and returns a
// new, trained step. The receiver is never modified, so preparing the same
// spec twice gives two independent trained steps.
//
// Bake applies a trained step to any frame using only the state captured at
// prep time. Baking an untrained step is a usage error. Baking is a pure
// function of the trained step and its input, so baking the same frame twice
// gives the same result.
//
// Tidy reports what a step learned as a frame with the columns terms, value
// and id. It works before and after training.
//
// # Steps
//
// ## Mutate (KindMutate)
//
// Evaluates named expressions in declaration order. Later expressions see the
// columns earlier ones created.
//
//	x = 5 -> {double = x * 2} -> double = 10
//
// ## Natural spline (KindNaturalSpline)
//
// Replaces each selected numeric column with the columns of a natural cubic
// spline basis, named <column>_ns_<i>.
//
// ## Median imputation (KindImputeMedian)
//
// Replaces missing values with the training median. Integer columns get the
// median truncated to an integer.
//
// # Persistence
//
// ToDocument and FromDocument convert between steps and Document, the
// serializable form that carries everything Bake needs.
package steps

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/selectors"
	"github.com/Ramsey-B/fern/pkg/utils"
	"github.com/google/uuid"
)

// Kind names a step type in documents and ids.
type Kind string

const (
	KindMutate        Kind = "mutate"
	KindNaturalSpline Kind = "ns"
	KindImputeMedian  Kind = "impute_median"

	// KindMedianImpute is the legacy name of KindImputeMedian.
	KindMedianImpute Kind = "medianimpute"
)

var Kinds = []Kind{KindMutate, KindNaturalSpline, KindImputeMedian, KindMedianImpute}

// Step is the contract every step implements.
type Step interface {
	GetID() string
	GetKind() Kind
	GetRole() models.Role
	IsTrained() bool
	Skip() bool
	// Terms are the selector texts (or expression names for mutate) given at construction.
	Terms() []string
	// Columns are the columns resolved at prep time; nil until trained.
	Columns() []string
	Prep(training *frame.Frame, info models.VarInfos) (Step, error)
	Bake(data *frame.Frame) (*frame.Frame, error)
	Tidy() *frame.Frame
}

// Options are the arguments shared by every step constructor.
type Options struct {
	ID   string      `json:"id" yaml:"id"`
	Role models.Role `json:"role" yaml:"role" validate:"omitempty,oneof=predictor outcome other"`
	Skip bool        `json:"skip" yaml:"skip"`
}

type base struct {
	id      string
	kind    Kind
	role    models.Role
	skip    bool
	trained bool
	terms   []string
	columns []string
}

func newBase(kind Kind, defaultRole models.Role, opts Options, terms []string) (base, error) {
	if _, err := utils.Validate(opts); err != nil {
		return base{}, errors.NewUsageError("%v", err).AddStep(opts.ID)
	}

	b := base{
		id:    opts.ID,
		kind:  kind,
		role:  opts.Role,
		skip:  opts.Skip,
		terms: append([]string{}, terms...),
	}
	if b.id == "" {
		b.id = NewID(kind)
	}
	if b.role == "" {
		b.role = defaultRole
	}
	return b, nil
}

// NewID returns a random id of the form <kind>_<5 characters>.
func NewID(kind Kind) string {
	return string(kind) + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
}

func (b *base) GetID() string {
	return b.id
}

func (b *base) GetKind() Kind {
	return b.kind
}

func (b *base) GetRole() models.Role {
	return b.role
}

func (b *base) IsTrained() bool {
	return b.trained
}

func (b *base) Skip() bool {
	return b.skip
}

func (b *base) Terms() []string {
	return append([]string{}, b.terms...)
}

func (b *base) Columns() []string {
	if b.columns == nil {
		return nil
	}
	return append([]string{}, b.columns...)
}

func (b *base) checkTrained() error {
	if !b.trained {
		return errors.NewUsageError("step has not been trained; call Prep before Bake").AddStep(b.id)
	}
	return nil
}

// resolveNumeric resolves the selector terms and checks every selected column
// is numeric and present in the training frame.
func (b *base) resolveNumeric(training *frame.Frame, info models.VarInfos) ([]string, error) {
	if info == nil {
		info = training.Info()
	}

	names, err := selectors.Resolve(b.terms, info)
	if err != nil {
		return nil, errors.WrapStepError(err).AddStep(b.id)
	}

	for _, name := range names {
		col, ok := training.Column(name)
		if !ok {
			return nil, errors.NewUsageError("column '%s' is not in the training data", name).AddStep(b.id).AddColumn(name)
		}
		if !col.Type.IsNumeric() {
			return nil, errors.NewTypeMismatchError("all columns selected for the step should be double or integer, got %s", col.Type).AddStep(b.id).AddColumn(name)
		}
	}

	return names, nil
}

// Apply bakes step into data unless the step is marked skip, in which case
// data is returned unchanged. Skipped steps still run at prep time.
func Apply(step Step, data *frame.Frame) (*frame.Frame, error) {
	if step.Skip() {
		return data, nil
	}
	return step.Bake(data)
}

// tidyFrame builds the terms/value/id report.
func tidyFrame(id string, terms []string, valueType models.ValueType, values []any) *frame.Frame {
	ids := make([]any, len(terms))
	termCells := make([]any, len(terms))
	for i, term := range terms {
		ids[i] = id
		termCells[i] = term
	}

	return frame.MustNew(
		frame.MustColumn("terms", models.ValueTypeString, termCells...),
		frame.MustColumn("value", valueType, values...),
		frame.MustColumn("id", models.ValueTypeString, ids...),
	)
}
