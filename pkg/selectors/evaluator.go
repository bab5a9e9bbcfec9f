package selectors

import (
	"fmt"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/jmespath/go-jmespath"
)

// varFilter is the predicate behind where(): a JMESPath filter applied to the
// variable table, one row at a time. Rows carry variable, type, role and
// source.
type varFilter struct {
	text  string
	query *jmespath.JMESPath
}

func compileVarFilter(text string) (*varFilter, error) {
	query, err := jmespath.Compile(fmt.Sprintf("[?(%s)].variable", text))
	if err != nil {
		return nil, err
	}
	return &varFilter{text: text, query: query}, nil
}

// Match reports whether the filter keeps info, using JMESPath truthiness.
func (f *varFilter) Match(info models.VarInfo) (bool, error) {
	result, err := f.query.Search(models.VarInfos{info}.ToMaps())
	if err != nil {
		return false, fmt.Errorf("failed to evaluate where(%q): %w", f.text, err)
	}
	kept, _ := result.([]any)
	return len(kept) > 0, nil
}
