package check

import (
	"context"
	"errors"
	"testing"

	"github.com/chmouel/git-submodule-hook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	refs     []models.SubmoduleRef
	listErr  error
	unstaged map[string]bool
	staged   map[string]bool
	failing  map[string]error
}

func (f *fakeRepo) Submodules(context.Context) ([]models.SubmoduleRef, error) {
	return f.refs, f.listErr
}

func (f *fakeRepo) WorktreeModified(_ context.Context, ref models.SubmoduleRef) (bool, error) {
	if err := f.failing[ref.Path]; err != nil {
		return false, err
	}
	return f.unstaged[ref.Path], nil
}

func (f *fakeRepo) IndexModified(_ context.Context, ref models.SubmoduleRef) (bool, error) {
	if err := f.failing[ref.Path]; err != nil {
		return false, err
	}
	return f.staged[ref.Path], nil
}

func refs(paths ...string) []models.SubmoduleRef {
	out := make([]models.SubmoduleRef, 0, len(paths))
	for _, p := range paths {
		out = append(out, models.SubmoduleRef{Path: p})
	}
	return out
}

func paths(in []models.SubmoduleRef) []string {
	var out []string
	for _, r := range in {
		out = append(out, r.Path)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		repo         *fakeRepo
		wantUnstaged []string
		wantStaged   []string
	}{
		{
			name:         "no submodules",
			repo:         &fakeRepo{},
			wantUnstaged: nil,
			wantStaged:   nil,
		},
		{
			name: "unmodified excluded from both lists",
			repo: &fakeRepo{refs: refs("sub/a", "sub/b")},
		},
		{
			name: "registered but not checked out stays out of both lists",
			repo: &fakeRepo{
				refs:     refs("sub/uninitialized", "sub/active"),
				unstaged: map[string]bool{"sub/active": true},
			},
			wantUnstaged: []string{"sub/active"},
		},
		{
			name: "unstaged only",
			repo: &fakeRepo{
				refs:     refs("sub/a"),
				unstaged: map[string]bool{"sub/a": true},
			},
			wantUnstaged: []string{"sub/a"},
		},
		{
			name: "staged only",
			repo: &fakeRepo{
				refs:   refs("sub/a"),
				staged: map[string]bool{"sub/a": true},
			},
			wantStaged: []string{"sub/a"},
		},
		{
			name: "partially staged appears in both lists",
			repo: &fakeRepo{
				refs:     refs("sub/a"),
				unstaged: map[string]bool{"sub/a": true},
				staged:   map[string]bool{"sub/a": true},
			},
			wantUnstaged: []string{"sub/a"},
			wantStaged:   []string{"sub/a"},
		},
		{
			name: "mixed set keeps enumeration order",
			repo: &fakeRepo{
				refs:     refs("sub/a", "sub/b", "sub/c", "sub/d"),
				unstaged: map[string]bool{"sub/a": true, "sub/c": true},
				staged:   map[string]bool{"sub/b": true, "sub/c": true},
			},
			wantUnstaged: []string{"sub/a", "sub/c"},
			wantStaged:   []string{"sub/b", "sub/c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag, err := Classify(context.Background(), tt.repo, false)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnstaged, paths(diag.Unstaged))
			assert.Equal(t, tt.wantStaged, paths(diag.Staged))
		})
	}
}

func TestClassifyFailingSubmoduleNonStrict(t *testing.T) {
	repo := &fakeRepo{
		refs:     refs("sub/broken", "sub/ok"),
		failing:  map[string]error{"sub/broken": errors.New("object store corrupt")},
		unstaged: map[string]bool{"sub/ok": true},
	}

	diag, err := Classify(context.Background(), repo, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/ok"}, paths(diag.Unstaged), "classification continues past the failing submodule")
	assert.Empty(t, diag.Staged)
}

func TestClassifyFailingSubmoduleStrict(t *testing.T) {
	repo := &fakeRepo{
		refs:    refs("sub/ok", "sub/broken"),
		failing: map[string]error{"sub/broken": errors.New("object store corrupt")},
	}

	_, err := Classify(context.Background(), repo, true)
	require.Error(t, err)

	var subErr *SubmoduleAccessError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "sub/broken", subErr.Path)
	assert.ErrorContains(t, subErr, "object store corrupt")
}

func TestClassifyListingFailure(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("cannot read .gitmodules")}

	t.Run("strict aborts", func(t *testing.T) {
		_, err := Classify(context.Background(), repo, true)
		require.Error(t, err)
	})

	t.Run("non-strict degrades to empty", func(t *testing.T) {
		diag, err := Classify(context.Background(), repo, false)
		require.NoError(t, err)
		assert.True(t, diag.Empty())
	})
}
