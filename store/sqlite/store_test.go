package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-punkt/model"
	"github.com/jamesainslie/go-punkt/store"
)

func sampleModel(abbrevs ...string) *model.Model {
	p := model.NewParams()
	for _, a := range abbrevs {
		p.Abbreviations[a] = struct{}{}
	}
	p.Collocations[model.Pair{First: "##number##", Second: "may"}] = struct{}{}
	p.OrthoContext["the"] = model.OrthoBegUpper | model.OrthoMidLower
	return model.New(p, model.DefaultThresholds())
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	m := sampleModel("dr", "u.s")
	require.NoError(t, s.Save(ctx, "en", m))

	got, err := s.Load(ctx, "en")
	require.NoError(t, err)
	assert.True(t, m.Equal(got))
}

func TestStore_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.Save(ctx, "news", sampleModel("dr")))
	require.NoError(t, s.Save(ctx, "legal", sampleModel("cf")))
	require.NoError(t, s.Save(ctx, "news", sampleModel("prof")))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"legal", "news"}, names)

	got, err := s.Load(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, []string{"prof"}, got.Abbreviations())
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "models.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "en", sampleModel("dr")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Load(ctx, "en")
	require.NoError(t, err)
	assert.True(t, got.IsAbbreviation("dr"))
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.Save(ctx, "", sampleModel("dr")), store.ErrInvalidName)
	_, err = s.Load(ctx, "../escape")
	assert.ErrorIs(t, err, store.ErrInvalidName)
	assert.ErrorIs(t, s.Save(ctx, "zero", &model.Model{}), model.ErrNotTrained)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}
