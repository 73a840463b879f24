// Package outcomeindex writes a machine-readable YAML index of the recorded
// test outcomes.
package outcomeindex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/generators/outcomes"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
	"github.com/alexisbeaulieu97/extreports/pkg/diff"
)

// Kind is the name this generator is requested by.
const Kind report.Kind = "outcome-index"

// FileName is written into the output directory.
const FileName = "outcome-index.yaml"

// Index is the document written to FileName.
type Index struct {
	Project  string  `yaml:"project"`
	Source   string  `yaml:"source"`
	Branch   string  `yaml:"branch,omitempty"`
	Commit   string  `yaml:"commit,omitempty"`
	Outcomes []Entry `yaml:"outcomes"`
}

// Entry describes one outcome file.
type Entry struct {
	Name     string    `yaml:"name"`
	Format   string    `yaml:"format"`
	Size     int64     `yaml:"size"`
	Modified time.Time `yaml:"modified"`
}

type generator struct {
	outputDir string
	store     ports.EnvironmentStore
	logger    *logger.Logger
}

var _ ports.ReportGenerator = (*generator)(nil)

func init() {
	report.Register(Kind, "YAML index of recorded outcome files", New)
}

// New builds the generator from the dispatch dependencies.
func New(deps report.Dependencies) (ports.ReportGenerator, error) {
	if deps.OutputDirectory == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("environment store is required")
	}
	return &generator{outputDir: deps.OutputDirectory, store: deps.Store, logger: deps.Logger}, nil
}

func (g *generator) GenerateReportFrom(ctx context.Context, sourceDirectory string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	found, err := outcomes.List(sourceDirectory)
	if err != nil {
		return err
	}

	index := Index{
		Project:  g.store.PropertyOr(environment.ProjectKeyProperty, environment.DefaultProjectKey),
		Source:   sourceDirectory,
		Branch:   g.store.PropertyOr(environment.GitBranchProperty, ""),
		Commit:   g.store.PropertyOr(environment.GitCommitProperty, ""),
		Outcomes: make([]Entry, 0, len(found)),
	}
	for _, o := range found {
		index.Outcomes = append(index.Outcomes, Entry{
			Name:     o.Name,
			Format:   o.Format,
			Size:     o.Size,
			Modified: o.Modified,
		})
	}

	data, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("encode outcome index: %w", err)
	}

	path := filepath.Join(g.outputDir, FileName)
	previous, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read previous outcome index: %w", err)
	}

	if err := outcomes.WriteFile(path, data); err != nil {
		return err
	}

	g.logger.Debug("wrote outcome index", "path", path, "outcomes", len(found))
	if previous != nil {
		g.reportDrift(previous, data)
	}
	return nil
}

// reportDrift logs how the index moved since the previous run.
func (g *generator) reportDrift(previous, current []byte) {
	change := diff.Lines(previous, current)
	if !change.Changed() {
		g.logger.Info("outcome index unchanged since previous run")
		return
	}
	g.logger.Info("outcome index changed since previous run", "added_lines", change.Added, "removed_lines", change.Removed)
	g.logger.Debug("outcome index changes", "diff", change.Unified)
}
