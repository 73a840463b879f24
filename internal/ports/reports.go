package ports

import "context"

// ReportGenerator renders one extended report from a directory of recorded
// test outcomes. Where the report is written is the generator's own concern.
type ReportGenerator interface {
	GenerateReportFrom(ctx context.Context, sourceDirectory string) error
}

// ReportRegistry resolves report kinds to generators. Validate checks a whole
// request up front so callers can refuse it before any generator runs;
// Generator constructs a fresh generator for one kind.
type ReportRegistry interface {
	Validate(names []string) error
	Generator(name string) (ReportGenerator, error)
	Kinds() []string
}
