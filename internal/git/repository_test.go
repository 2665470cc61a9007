package git

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chmouel/git-submodule-hook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gitCall struct {
	dir  string
	args []string
}

func mockGit(t *testing.T, fn func(call gitCall) (string, int, error)) *[]gitCall {
	t.Helper()

	var calls []gitCall
	prev := runGit
	runGit = func(_ context.Context, dir string, args ...string) (string, int, error) {
		call := gitCall{dir: dir, args: args}
		calls = append(calls, call)
		return fn(call)
	}
	t.Cleanup(func() { runGit = prev })
	return &calls
}

func TestOpen(t *testing.T) {
	calls := mockGit(t, func(call gitCall) (string, int, error) {
		return ".git\n", 0, nil
	})

	repo, err := Open(context.Background(), "/some/repo")
	require.NoError(t, err)
	assert.Equal(t, "/some/repo", repo.Path())

	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"rev-parse", "--git-dir"}, (*calls)[0].args)
	assert.Equal(t, "/some/repo", (*calls)[0].dir)
}

func TestOpenNotARepository(t *testing.T) {
	mockGit(t, func(call gitCall) (string, int, error) {
		return "", 128, nil
	})

	_, err := Open(context.Background(), "/tmp/nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotARepository)
}

func TestOpenExecFailure(t *testing.T) {
	mockGit(t, func(call gitCall) (string, int, error) {
		return "", -1, errors.New("git: command not found")
	})

	_, err := Open(context.Background(), ".")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotARepository)
}

func TestSubmodules(t *testing.T) {
	tests := []struct {
		name   string
		output string
		code   int
		want   []models.SubmoduleRef
	}{
		{
			name: "two submodules in file order",
			output: `submodule.libfoo.path vendor/libfoo
submodule.tools.path tools/build
`,
			want: []models.SubmoduleRef{{Path: "vendor/libfoo"}, {Path: "tools/build"}},
		},
		{
			name: "path containing spaces",
			output: "submodule.docs.path docs/user guide\n",
			want:   []models.SubmoduleRef{{Path: "docs/user guide"}},
		},
		{
			name: "no .gitmodules",
			code: 1,
			want: nil,
		},
		{
			name:   "malformed line skipped",
			output: "garbage\nsubmodule.a.path sub/a\n",
			want:   []models.SubmoduleRef{{Path: "sub/a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGit(t, func(call gitCall) (string, int, error) {
				assert.Equal(t, "config", call.args[0])
				assert.Contains(t, call.args, ".gitmodules")
				return tt.output, tt.code, nil
			})

			repo := &Repository{path: "."}
			refs, err := repo.Submodules(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, refs)
		})
	}
}

func TestDiffQueries(t *testing.T) {
	ref := models.SubmoduleRef{Path: "vendor/libfoo"}

	t.Run("worktree modified uses plain diff", func(t *testing.T) {
		calls := mockGit(t, func(call gitCall) (string, int, error) {
			return "", 1, nil
		})

		repo := &Repository{path: "/r"}
		modified, err := repo.WorktreeModified(context.Background(), ref)
		require.NoError(t, err)
		assert.True(t, modified)

		args := (*calls)[0].args
		assert.NotContains(t, args, "--cached")
		assert.Contains(t, args, "--ignore-submodules=dirty")
		assert.Equal(t, "vendor/libfoo", args[len(args)-1])
	})

	t.Run("index modified uses cached diff", func(t *testing.T) {
		calls := mockGit(t, func(call gitCall) (string, int, error) {
			return "", 0, nil
		})

		repo := &Repository{path: "/r"}
		modified, err := repo.IndexModified(context.Background(), ref)
		require.NoError(t, err)
		assert.False(t, modified)
		assert.Contains(t, (*calls)[0].args, "--cached")
	})

	t.Run("dirty content alone is not a modification", func(t *testing.T) {
		// A submodule with edited-but-uncommitted files and no new
		// checked-out commit: git reports a difference only when the
		// dirty filter is off. The query must pass the filter so such
		// a submodule stays unmodified.
		mockGit(t, func(call gitCall) (string, int, error) {
			for _, a := range call.args {
				if a == "--ignore-submodules=dirty" {
					return "", 0, nil
				}
			}
			return "", 1, nil
		})

		repo := &Repository{path: "/r"}
		modified, err := repo.WorktreeModified(context.Background(), ref)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("uninitialized submodule reports both facts false", func(t *testing.T) {
		// Registered in .gitmodules but never checked out: git diff has
		// nothing to compare for the path and exits 0.
		mockGit(t, func(call gitCall) (string, int, error) {
			return "", 0, nil
		})

		repo := &Repository{path: "/r"}
		missing := models.SubmoduleRef{Path: "vendor/uninitialized"}

		unstaged, err := repo.WorktreeModified(context.Background(), missing)
		require.NoError(t, err)
		assert.False(t, unstaged)

		staged, err := repo.IndexModified(context.Background(), missing)
		require.NoError(t, err)
		assert.False(t, staged)
	})

	t.Run("unexpected exit code is an error", func(t *testing.T) {
		mockGit(t, func(call gitCall) (string, int, error) {
			return "", 129, nil
		})

		repo := &Repository{path: "/r"}
		_, err := repo.WorktreeModified(context.Background(), ref)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "exited 129"))
	})
}
