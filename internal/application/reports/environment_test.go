package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
)

func TestConfigureEnvironmentDefaults(t *testing.T) {
	t.Parallel()

	store := environment.NewStore(nil)
	ConfigureEnvironment(store, "", "")

	require.Equal(t, environment.DefaultProjectKey, store.PropertyOr(environment.ProjectKeyProperty, ""))
	require.Equal(t, "en", store.PropertyOr(environment.LocaleProperty, ""))
	_, ok := store.Property(environment.RequirementsBaseDirProperty)
	require.False(t, ok)
}

func TestConfigureEnvironmentExplicitValues(t *testing.T) {
	t.Parallel()

	store := environment.NewStore(nil)
	ConfigureEnvironment(store, "acme", "reqs/")

	require.Equal(t, "acme", store.PropertyOr(environment.ProjectKeyProperty, ""))
	require.Equal(t, "reqs/", store.PropertyOr(environment.RequirementsBaseDirProperty, ""))
}

func TestConfigureEnvironmentLeavesRequirementsUntouched(t *testing.T) {
	t.Parallel()

	store := environment.NewStore(map[string]string{
		environment.RequirementsBaseDirProperty: "from-elsewhere",
	})
	ConfigureEnvironment(store, "acme", "")

	require.Equal(t, "from-elsewhere", store.PropertyOr(environment.RequirementsBaseDirProperty, ""))
}

func TestConfigureEnvironmentIsIdempotent(t *testing.T) {
	t.Parallel()

	store := environment.NewStore(nil)
	ConfigureEnvironment(store, "acme", "reqs/")
	first := store.Snapshot()

	ConfigureEnvironment(store, "acme", "reqs/")
	require.Equal(t, first, store.Snapshot())
}

func TestPublishVersionControl(t *testing.T) {
	t.Parallel()

	t.Run("outside repository", func(t *testing.T) {
		t.Parallel()

		store := environment.NewStore(nil)
		PublishVersionControl(store, t.TempDir(), logger.Nop())
		require.Empty(t, store.Keys())
	})

	t.Run("inside repository", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644))
		wt, err := repo.Worktree()
		require.NoError(t, err)
		_, err = wt.Add("README")
		require.NoError(t, err)
		hash, err := wt.Commit("init", &git.CommitOptions{
			Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Unix(0, 0)},
		})
		require.NoError(t, err)

		store := environment.NewStore(nil)
		PublishVersionControl(store, dir, logger.Nop())
		require.Equal(t, "master", store.PropertyOr(environment.GitBranchProperty, ""))
		require.Equal(t, hash.String(), store.PropertyOr(environment.GitCommitProperty, ""))
	})
}
