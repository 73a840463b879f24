package reports

import (
	"golang.org/x/text/language"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/infrastructure/vcs"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
)

// ReportLocale is the locale every generator formats with.
var ReportLocale = language.English

// ConfigureEnvironment publishes the locale and build identity into store.
// An empty projectKey falls back to the default key; an empty
// requirementsBaseDir leaves any existing value in place.
func ConfigureEnvironment(store ports.EnvironmentStore, projectKey, requirementsBaseDir string) {
	store.SetProperty(environment.LocaleProperty, ReportLocale.String())

	if projectKey == "" {
		projectKey = environment.DefaultProjectKey
	}
	store.SetProperty(environment.ProjectKeyProperty, projectKey)

	if requirementsBaseDir != "" {
		store.SetProperty(environment.RequirementsBaseDirProperty, requirementsBaseDir)
	}
}

// PublishVersionControl records the branch and commit of the repository
// containing projectDir. Projects outside a repository are left alone.
func PublishVersionControl(store ports.EnvironmentStore, projectDir string, log *logger.Logger) {
	id, ok, err := vcs.Lookup(projectDir)
	if err != nil {
		log.Warn("unable to read version control identity", "project_dir", projectDir, "error", err.Error())
		return
	}
	if !ok {
		log.Debug("project is not a git working tree", "project_dir", projectDir)
		return
	}
	store.SetProperty(environment.GitBranchProperty, id.Branch)
	store.SetProperty(environment.GitCommitProperty, id.Commit)
}
