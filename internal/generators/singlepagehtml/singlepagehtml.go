// Package singlepagehtml renders a single self-contained HTML summary of the
// recorded test outcomes.
package singlepagehtml

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/generators/outcomes"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
)

// Kind is the name this generator is requested by.
const Kind report.Kind = "single-page-html"

// FileName is written into the output directory.
const FileName = "serenity-summary.html"

var page = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}">
<head>
<meta charset="utf-8">
<title>{{.Project}} test summary</title>
</head>
<body>
<h1>{{.Project}}</h1>
<p>{{.Total}} recorded outcomes, generated {{.Generated}}</p>
{{- if .Requirements}}
<p>Requirements: {{.Requirements}}</p>
{{- end}}
<table>
<thead><tr><th>Outcome</th><th>Format</th><th>Bytes</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Name}}</td><td>{{.Format}}</td><td>{{.Size}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type row struct {
	Name   string
	Format string
	Size   string
}

type pageData struct {
	Locale       string
	Project      string
	Requirements string
	Total        string
	Generated    string
	Rows         []row
}

type generator struct {
	outputDir string
	store     ports.EnvironmentStore
	logger    *logger.Logger
	now       func() time.Time
}

var _ ports.ReportGenerator = (*generator)(nil)

func init() {
	report.Register(Kind, "single HTML page summarising recorded outcomes", New)
}

// New builds the generator from the dispatch dependencies.
func New(deps report.Dependencies) (ports.ReportGenerator, error) {
	if deps.OutputDirectory == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("environment store is required")
	}
	return &generator{
		outputDir: deps.OutputDirectory,
		store:     deps.Store,
		logger:    deps.Logger,
		now:       time.Now,
	}, nil
}

// GenerateReportFrom writes the summary page for the outcomes in sourceDirectory.
func (g *generator) GenerateReportFrom(ctx context.Context, sourceDirectory string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	found, err := outcomes.List(sourceDirectory)
	if err != nil {
		return err
	}

	locale := g.store.PropertyOr(environment.LocaleProperty, language.English.String())
	tag, err := language.Parse(locale)
	if err != nil {
		g.logger.Warn("unrecognised report locale", "locale", locale)
		tag = language.English
	}
	printer := message.NewPrinter(tag)

	data := pageData{
		Locale:       tag.String(),
		Project:      g.store.PropertyOr(environment.ProjectKeyProperty, environment.DefaultProjectKey),
		Requirements: g.store.PropertyOr(environment.RequirementsBaseDirProperty, ""),
		Total:        printer.Sprintf("%d", len(found)),
		Generated:    g.now().UTC().Format(time.RFC3339),
		Rows:         make([]row, 0, len(found)),
	}
	for _, o := range found {
		data.Rows = append(data.Rows, row{
			Name:   o.Name,
			Format: o.Format,
			Size:   printer.Sprintf("%d", o.Size),
		})
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	path := filepath.Join(g.outputDir, FileName)
	if err := outcomes.WriteFile(path, buf.Bytes()); err != nil {
		return err
	}

	g.logger.Info("wrote summary page", "path", path, "outcomes", len(found))
	return nil
}
