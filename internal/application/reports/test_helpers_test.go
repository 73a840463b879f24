package reports

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
)

type staticConfig struct {
	output string
}

func (c staticConfig) OutputDirectory() string { return c.output }

type invocation struct {
	report string
	source string
}

// recorder collects generator invocations across every generator it builds.
type recorder struct {
	mu     sync.Mutex
	calls  []invocation
	failOn map[string]error
}

func (r *recorder) record(name, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, invocation{report: name, source: source})
	return r.failOn[name]
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.report
	}
	return out
}

type recordingGenerator struct {
	name string
	rec  *recorder
}

func (g *recordingGenerator) GenerateReportFrom(_ context.Context, source string) error {
	return g.rec.record(g.name, source)
}

func newRecordingRegistry(rec *recorder, kinds ...string) *report.Registry {
	reg := report.NewRegistry()
	for _, kind := range kinds {
		name := kind
		if err := reg.RegisterFactory(report.Kind(name), "test report", func(report.Dependencies) (ports.ReportGenerator, error) {
			return &recordingGenerator{name: name, rec: rec}, nil
		}); err != nil {
			panic(err)
		}
	}
	return reg
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Subscribe(string, ports.EventHandler) (ports.Subscription, error) {
	return nil, errors.New("not supported")
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type failingActivator struct {
	err   error
	calls int
}

func (a *failingActivator) Activate(context.Context, ports.ProjectDescriptor) error {
	a.calls++
	return a.err
}
