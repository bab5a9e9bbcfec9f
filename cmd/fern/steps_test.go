package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ramsey-B/fern/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainingCSV = `x,n,label
1.5,1,a
3.5,2,b
NA,4,c
7.5,NA,d
`

const imputeSpec = `kind: impute_median
id: fill
terms:
  - all_numeric()
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestPrepBakeTidy(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "impute.yaml", imputeSpec)
	training := writeFile(t, dir, "training.csv", trainingCSV)
	newData := writeFile(t, dir, "new.csv", "x,n,label\nNA,NA,e\n2.5,8,f\n")
	trained := filepath.Join(dir, "impute.trained.json")

	_, err := execute(t, "prep", "--spec", spec, "--data", training, "--out", trained)
	require.NoError(t, err)

	doc, err := codec.ReadDocument(trained)
	require.NoError(t, err)
	assert.True(t, doc.Trained)
	assert.Equal(t, []string{"x", "n"}, doc.Columns)

	out, err := execute(t, "bake", "--step", trained, "--data", newData)
	require.NoError(t, err)
	assert.Equal(t, "x,n,label\n3.5,2,e\n2.5,8,f\n", out)

	out, err = execute(t, "tidy", "--step", trained)
	require.NoError(t, err)
	assert.Equal(t, "terms,value,id\nx,3.5,fill\nn,2,fill\n", out)

	baked := filepath.Join(dir, "baked.csv")
	_, err = execute(t, "bake", "--step", trained, "--data", newData, "--out", baked)
	require.NoError(t, err)
	written, err := os.ReadFile(baked)
	require.NoError(t, err)
	assert.Equal(t, "x,n,label\n3.5,2,e\n2.5,8,f\n", string(written))
}

func TestBake_TypesInputsFromTrainedState(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "impute.yaml", "kind: impute_median\nid: fill\nterms:\n  - x\n")
	training := writeFile(t, dir, "training.csv", "x\n1\n2\n3.5\n4\n")
	trained := filepath.Join(dir, "impute.trained.json")

	_, err := execute(t, "prep", "--spec", spec, "--data", training, "--out", trained)
	require.NoError(t, err)

	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "NA only column", data: "x,label\nNA,a\nNA,b\n", want: "x,label\n2.75,a\n2.75,b\n"},
		{name: "whole numbers", data: "x\nNA\n5\n", want: "x\n2.75\n5\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := writeFile(t, dir, "new.csv", test.data)
			out, err := execute(t, "bake", "--step", trained, "--data", data)
			require.NoError(t, err)
			assert.Equal(t, test.want, out)
		})
	}
}

func TestPrep_Stdout(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "impute.json", `{"kind": "medianimpute", "id": "legacy", "terms": ["x"]}`)
	training := writeFile(t, dir, "training.csv", trainingCSV)

	out, err := execute(t, "prep", "--spec", spec, "--data", training)
	require.NoError(t, err)
	assert.Contains(t, out, `"trained": true`)
	assert.Contains(t, out, `"kind": "impute_median"`)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	training := writeFile(t, dir, "training.csv", trainingCSV)
	untrained := writeFile(t, dir, "untrained.yaml", imputeSpec)
	labelSpline := writeFile(t, dir, "ns.yaml", "kind: ns\nterms:\n  - label\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing flags", args: []string{"prep"}},
		{name: "missing spec file", args: []string{"prep", "--spec", filepath.Join(dir, "nope.yaml"), "--data", training}},
		{name: "missing data file", args: []string{"bake", "--step", untrained, "--data", filepath.Join(dir, "nope.csv")}},
		{name: "bake untrained step", args: []string{"bake", "--step", untrained, "--data", training}},
		{name: "spline on a string column", args: []string{"prep", "--spec", labelSpline, "--data", training}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, test.args...)
			assert.Error(t, err)
		})
	}
}
