package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

type stubGenerator struct {
	deps Dependencies
}

func (s *stubGenerator) GenerateReportFrom(context.Context, string) error { return nil }

func stubFactory(deps Dependencies) (ports.ReportGenerator, error) {
	return &stubGenerator{deps: deps}, nil
}

func TestRegisterFactoryRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.Error(t, reg.RegisterFactory("", "missing kind", stubFactory))
	require.Error(t, reg.RegisterFactory("html", "nil factory", nil))

	require.NoError(t, reg.RegisterFactory("html", "first", stubFactory))
	err := reg.RegisterFactory("html", "second", stubFactory)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestResolverValidateListsUnknownOnce(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.RegisterFactory("html", "", stubFactory))
	res := reg.Bind(Dependencies{})

	require.NoError(t, res.Validate(nil))
	require.NoError(t, res.Validate([]string{"html", "html"}))

	err := res.Validate([]string{"bogus", "html", "nope", "bogus"})
	var unknown *reporterrors.UnknownReportError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, []string{"bogus", "nope"}, unknown.Names)
}

func TestResolverGeneratorPassesDependencies(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.RegisterFactory("html", "", stubFactory))

	store := environment.NewStore(nil)
	res := reg.Bind(Dependencies{OutputDirectory: "/out", Store: store})

	gen, err := res.Generator("html")
	require.NoError(t, err)

	stub, ok := gen.(*stubGenerator)
	require.True(t, ok)
	require.Equal(t, "/out", stub.deps.OutputDirectory)
	require.Same(t, store, stub.deps.Store)
}

func TestResolverGeneratorErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reg := NewRegistry()
	require.NoError(t, reg.RegisterFactory("broken", "", func(Dependencies) (ports.ReportGenerator, error) {
		return nil, boom
	}))
	require.NoError(t, reg.RegisterFactory("empty", "", func(Dependencies) (ports.ReportGenerator, error) {
		return nil, nil
	}))
	res := reg.Bind(Dependencies{})

	_, err := res.Generator("missing")
	var unknown *reporterrors.UnknownReportError
	require.ErrorAs(t, err, &unknown)

	_, err = res.Generator("broken")
	require.ErrorIs(t, err, boom)

	_, err = res.Generator("empty")
	require.Error(t, err)
	require.Contains(t, err.Error(), "returned nil")
}

func TestResolverKindsSorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.RegisterFactory("zeta", "", stubFactory))
	require.NoError(t, reg.RegisterFactory("alpha", "", stubFactory))

	require.Equal(t, []string{"alpha", "zeta"}, reg.Bind(Dependencies{}).Kinds())
}
