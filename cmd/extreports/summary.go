package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/extreports/internal/ports"
)

type summaryRow struct {
	Report     string
	DurationMS int64
	Err        string
}

// summaryCollector records per-report outcomes from the event stream.
type summaryCollector struct {
	mu   sync.Mutex
	rows []summaryRow
}

func (c *summaryCollector) subscribe(publisher ports.EventPublisher) ([]ports.Subscription, error) {
	var subs []ports.Subscription
	for _, eventType := range []string{ports.EventReportCompleted, ports.EventReportFailed} {
		sub, err := publisher.Subscribe(eventType, c.handle)
		if err != nil {
			for _, s := range subs {
				s.Unsubscribe()
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (c *summaryCollector) handle(_ context.Context, event ports.Event) error {
	payload := event.Payload()
	row := summaryRow{}
	row.Report, _ = payload["report"].(string)
	row.DurationMS, _ = payload["duration_ms"].(int64)
	if event.EventType() == ports.EventReportFailed {
		row.Err, _ = payload["error"].(string)
		if row.Err == "" {
			row.Err = "failed"
		}
	}

	c.mu.Lock()
	c.rows = append(c.rows, row)
	c.mu.Unlock()
	return nil
}

func (c *summaryCollector) snapshot() []summaryRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]summaryRow(nil), c.rows...)
}

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
)

// renderSummary prints one line per attempted report. Requested kinds that
// never ran, because the run stopped first, are listed as not generated.
// Styling is applied only when styled is true.
func renderSummary(w io.Writer, outputDir string, requested []string, rows []summaryRow, styled bool) {
	if len(requested) == 0 {
		fmt.Fprintf(w, "No additional reports requested. Output directory: %s\n", outputDir)
		return
	}

	header := fmt.Sprintf("Reports written to %s", outputDir)
	if len(rows) < len(requested) || hasFailure(rows) {
		header = fmt.Sprintf("Report generation incomplete in %s", outputDir)
	}
	if styled {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	for _, row := range rows {
		marker, detail := "OK", fmt.Sprintf("(%dms)", row.DurationMS)
		if row.Err != "" {
			marker, detail = "FAIL", row.Err
		}
		if styled {
			if row.Err != "" {
				marker = failStyle.Render("✗")
			} else {
				marker = okStyle.Render("✓")
			}
			detail = mutedStyle.Render(detail)
		}
		fmt.Fprintf(w, "  %s %s %s\n", marker, row.Report, detail)
	}

	if len(rows) >= len(requested) {
		return
	}
	for _, name := range requested[len(rows):] {
		marker, detail := "SKIP", "(not generated)"
		if styled {
			marker = mutedStyle.Render("-")
			detail = mutedStyle.Render(detail)
		}
		fmt.Fprintf(w, "  %s %s %s\n", marker, name, detail)
	}
}

func hasFailure(rows []summaryRow) bool {
	for _, row := range rows {
		if row.Err != "" {
			return true
		}
	}
	return false
}

func isTerminal(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
