package reports

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

// DirectoryActivator publishes a project's compiled output directories as the
// report classpath in the environment store.
type DirectoryActivator struct {
	store  ports.EnvironmentStore
	logger *logger.Logger
}

// NewDirectoryActivator constructs a DirectoryActivator.
func NewDirectoryActivator(store ports.EnvironmentStore, log *logger.Logger) *DirectoryActivator {
	return &DirectoryActivator{store: store, logger: log}
}

// Activate registers every existing compiled output directory, in order.
// Missing directories are skipped; a path occupied by a regular file fails.
func (a *DirectoryActivator) Activate(_ context.Context, project ports.ProjectDescriptor) error {
	entries := make([]string, 0, len(project.CompiledOutputDirectories))
	for _, dir := range project.CompiledOutputDirectories {
		path := anchor(dir, project.BaseDirectory)

		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				a.logger.Debug("compiled output directory missing, skipping", "path", path)
				continue
			}
			return reporterrors.NewActivationError(path, err)
		}
		if !info.IsDir() {
			return reporterrors.NewActivationError(path, fmt.Errorf("not a directory"))
		}
		entries = append(entries, path)
	}

	a.store.SetProperty(environment.ClasspathProperty, strings.Join(entries, string(filepath.ListSeparator)))
	a.logger.Debug("project classes activated", "entries", len(entries))
	return nil
}

var _ ports.ClasspathActivator = (*DirectoryActivator)(nil)
