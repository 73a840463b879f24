package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

func newTestDispatcher(rec *recorder, policy FailurePolicy, publisher ports.EventPublisher) *Dispatcher {
	reg := newRecordingRegistry(rec, "html", "csv")
	return NewDispatcher(reg.Bind(report.Dependencies{}), policy, logger.Nop(), publisher)
}

func TestDispatchEmptyValueDoesNothing(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", ",", " , ,"} {
		rec := &recorder{}
		require.NoError(t, newTestDispatcher(rec, FailFast, nil).Dispatch(context.Background(), raw, "/src"))
		require.Empty(t, rec.calls, "raw=%q", raw)
	}
}

func TestDispatchInvokesGeneratorsInOrder(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	require.NoError(t, newTestDispatcher(rec, FailFast, nil).Dispatch(context.Background(), "html,csv", "/src"))

	require.Equal(t, []invocation{{report: "html", source: "/src"}, {report: "csv", source: "/src"}}, rec.calls)
}

func TestDispatchIgnoresEmptyEntriesAndWhitespace(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	require.NoError(t, newTestDispatcher(rec, FailFast, nil).Dispatch(context.Background(), " html,, csv ,", "/src"))
	require.Equal(t, []string{"html", "csv"}, rec.names())
}

func TestDispatchRunsDuplicatesAgain(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	require.NoError(t, newTestDispatcher(rec, FailFast, nil).Dispatch(context.Background(), "html,csv,html", "/src"))
	require.Equal(t, []string{"html", "csv", "html"}, rec.names())
}

func TestDispatchUnknownKindRunsNothing(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"bogus", "bogus,html", "html,bogus,csv"} {
		rec := &recorder{}
		err := newTestDispatcher(rec, FailFast, nil).Dispatch(context.Background(), raw, "/src")

		var unknown *reporterrors.UnknownReportError
		require.ErrorAs(t, err, &unknown, "raw=%q", raw)
		require.Equal(t, []string{"bogus"}, unknown.Names)
		require.Empty(t, rec.calls, "raw=%q", raw)
	}
}

func TestDispatchFailFastStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	rec := &recorder{failOn: map[string]error{"html": boom}}
	publisher := &recordingPublisher{}

	err := newTestDispatcher(rec, FailFast, publisher).Dispatch(context.Background(), "html,csv", "/src")

	var genErr *reporterrors.GenerationError
	require.ErrorAs(t, err, &genErr)
	require.Equal(t, "html", genErr.Report)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"html"}, rec.names())
	require.Equal(t, []string{ports.EventReportStarted, ports.EventReportFailed}, publisher.types())
}

func TestDispatchCollectAllAttemptsEveryEntry(t *testing.T) {
	t.Parallel()

	htmlErr := errors.New("html broke")
	csvErr := errors.New("csv broke")
	rec := &recorder{failOn: map[string]error{"html": htmlErr, "csv": csvErr}}

	err := newTestDispatcher(rec, CollectAll, nil).Dispatch(context.Background(), "html,csv,html", "/src")

	require.ErrorIs(t, err, htmlErr)
	require.ErrorIs(t, err, csvErr)
	require.Equal(t, []string{"html", "csv", "html"}, rec.names())
}

func TestDispatchPublishesCompletionEvents(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	publisher := &recordingPublisher{}
	require.NoError(t, newTestDispatcher(rec, "", publisher).Dispatch(context.Background(), "csv", "/src"))

	require.Equal(t, []string{ports.EventReportStarted, ports.EventReportCompleted}, publisher.types())
	require.Equal(t, "csv", publisher.events[1].Payload()["report"])
}

func TestDispatchWrapsFactoryFailures(t *testing.T) {
	t.Parallel()

	reg := report.NewRegistry()
	boom := errors.New("cannot construct")
	require.NoError(t, reg.RegisterFactory("broken", "", func(report.Dependencies) (ports.ReportGenerator, error) {
		return nil, boom
	}))

	err := NewDispatcher(reg.Bind(report.Dependencies{}), FailFast, logger.Nop(), nil).
		Dispatch(context.Background(), "broken", "/src")

	var genErr *reporterrors.GenerationError
	require.ErrorAs(t, err, &genErr)
	require.ErrorIs(t, err, boom)
}
