package reports

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexisbeaulieu97/extreports/internal/ports"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

// Directories holds the absolute working directories of one invocation.
type Directories struct {
	Output  string
	Source  string
	Project string
}

// ResolveDirectories fills unset directories from cfg, anchors relative ones at
// projectBaseDir and creates the output directory. Explicit absolute paths are
// returned unchanged.
func ResolveDirectories(explicitOutput, explicitSource string, cfg ports.Configuration, projectBaseDir string) (Directories, error) {
	base, err := filepath.Abs(projectBaseDir)
	if err != nil {
		return Directories{}, reporterrors.NewConfigurationError(projectBaseDir, "resolve project directory", err)
	}

	output, err := withFallback(explicitOutput, cfg, "output")
	if err != nil {
		return Directories{}, err
	}
	source, err := withFallback(explicitSource, cfg, "source")
	if err != nil {
		return Directories{}, err
	}

	dirs := Directories{
		Output:  anchor(output, base),
		Source:  anchor(source, base),
		Project: base,
	}

	if err := os.MkdirAll(dirs.Output, 0o755); err != nil {
		return Directories{}, reporterrors.NewConfigurationError(dirs.Output, "create output directory", err)
	}

	return dirs, nil
}

func withFallback(explicit string, cfg ports.Configuration, which string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if cfg != nil && cfg.OutputDirectory() != "" {
		return cfg.OutputDirectory(), nil
	}
	return "", reporterrors.NewConfigurationError("", fmt.Sprintf("no %s directory supplied and no default configured", which), nil)
}

func anchor(path, base string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
