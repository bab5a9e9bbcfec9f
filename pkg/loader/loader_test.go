package loader

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Ramsey-B/fern/pkg/frame"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepository struct {
	*MemoryRepository
	gets int
}

func (r *countingRepository) Get(ctx context.Context, id string) (steps.Document, error) {
	r.gets++
	return r.MemoryRepository.Get(ctx, id)
}

type fakeShared struct {
	docs map[string]steps.Document
	err  error
	sets int
}

func (f *fakeShared) Get(_ context.Context, id string) (steps.Document, bool, error) {
	if f.err != nil {
		return steps.Document{}, false, f.err
	}
	doc, ok := f.docs[id]
	return doc, ok, nil
}

func (f *fakeShared) Set(_ context.Context, doc steps.Document) error {
	f.sets++
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeShared) Delete(_ context.Context, id string) error {
	delete(f.docs, id)
	return nil
}

func trainedImpute(t *testing.T, id string) steps.Step {
	t.Helper()
	step, err := steps.NewImputeMedian(steps.Options{ID: id}, "x")
	require.NoError(t, err)
	training := frame.MustNew(frame.MustColumn("x", models.ValueTypeDouble, 1.0, 3.0, nil, 7.0))
	trained, err := step.Prep(training, nil)
	require.NoError(t, err)
	return trained
}

func TestLoader_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepository{MemoryRepository: NewMemoryRepository()}
	l := NewLoader(repo, nil, DefaultConfig(), logging.NewNopLogger())

	doc, err := l.Save(ctx, trainedImpute(t, "impute_median_aaaaa"))
	require.NoError(t, err)
	assert.True(t, doc.Trained)

	step, err := l.Get(ctx, "impute_median_aaaaa")
	require.NoError(t, err)
	assert.True(t, step.IsTrained())
	assert.Equal(t, 0, repo.gets)
	assert.Equal(t, Stats{Size: 1, Hits: 1}, l.Stats())

	l.Invalidate("impute_median_aaaaa")
	step, err = l.Get(ctx, "impute_median_aaaaa")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
	assert.Equal(t, []string{"x"}, step.Columns())
}

func TestLoader_NotFound(t *testing.T) {
	l := NewLoader(NewMemoryRepository(), nil, DefaultConfig(), logging.NewNopLogger())

	_, err := l.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
}

func TestLoader_SharedCache(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepository{MemoryRepository: NewMemoryRepository()}
	shared := &fakeShared{docs: map[string]steps.Document{}}

	writer := NewLoader(repo, shared, DefaultConfig(), logging.NewNopLogger())
	_, err := writer.Save(ctx, trainedImpute(t, "impute_median_bbbbb"))
	require.NoError(t, err)
	assert.Equal(t, 1, shared.sets)

	// a second instance finds the step in the shared cache
	reader := NewLoader(repo, shared, DefaultConfig(), logging.NewNopLogger())
	step, err := reader.Get(ctx, "impute_median_bbbbb")
	require.NoError(t, err)
	assert.True(t, step.IsTrained())
	assert.Equal(t, 0, repo.gets)

	require.NoError(t, reader.Delete(ctx, "impute_median_bbbbb"))
	assert.Empty(t, shared.docs)
	_, err = repo.MemoryRepository.Get(ctx, "impute_median_bbbbb")
	assert.Error(t, err)
}

func TestLoader_SharedCacheDown(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepository{MemoryRepository: NewMemoryRepository()}
	require.NoError(t, repo.Upsert(ctx, steps.ToDocument(trainedImpute(t, "impute_median_ccccc"))))

	shared := &fakeShared{docs: map[string]steps.Document{}, err: errors.New("connection refused")}
	l := NewLoader(repo, shared, DefaultConfig(), logging.NewNopLogger())

	step, err := l.Get(ctx, "impute_median_ccccc")
	require.NoError(t, err)
	assert.Equal(t, "impute_median_ccccc", step.GetID())
	assert.Equal(t, 1, repo.gets)
}

func TestLoader_ExpiryAndEviction(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepository{MemoryRepository: NewMemoryRepository()}
	l := NewLoader(repo, nil, Config{MaxSize: 2, TTL: time.Nanosecond}, logging.NewNopLogger())

	for _, id := range []string{"a", "b", "c"} {
		_, err := l.Save(ctx, trainedImpute(t, id))
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, l.Stats().Size, 2)

	time.Sleep(time.Millisecond)
	_, err := l.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	err := repo.Delete(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, httperror.GetStatusCode(err))
}
