package reports

import (
	"context"

	"github.com/alexisbeaulieu97/extreports/internal/environment"
	"github.com/alexisbeaulieu97/extreports/internal/logger"
	"github.com/alexisbeaulieu97/extreports/internal/ports"
	"github.com/alexisbeaulieu97/extreports/internal/report"
	reporterrors "github.com/alexisbeaulieu97/extreports/pkg/errors"
)

// Stage names carried by BuildStoppageError.
const (
	StageResolve   = "directory resolution"
	StageConfigure = "environment configuration"
	StageActivate  = "classpath activation"
	StageDispatch  = "report dispatch"
)

// Request carries the parameters of one invocation. Empty strings mean "not
// supplied".
type Request struct {
	OutputDirectory     string
	SourceDirectory     string
	ProjectDirectory    string
	ProjectKey          string
	RequirementsBaseDir string
	Reports             string
	ClassesDirectories  []string
}

// ExecutionContext is the resolved, read-only view of one invocation.
type ExecutionContext struct {
	OutputDirectory      string
	SourceDirectory      string
	ProjectBaseDirectory string
	ProjectKey           string
	RequirementsBaseDir  string
	RequestedReportKinds []string
}

// ExecuteUseCase runs directory resolution, environment configuration,
// classpath activation and report dispatch, strictly in that order.
type ExecuteUseCase struct {
	defaults  ports.Configuration
	store     ports.EnvironmentStore
	activator ports.ClasspathActivator
	registry  *report.Registry
	policy    FailurePolicy
	logger    *logger.Logger
	events    ports.EventPublisher
}

// NewExecuteUseCase constructs an ExecuteUseCase with dependencies injected.
func NewExecuteUseCase(defaults ports.Configuration, store ports.EnvironmentStore, activator ports.ClasspathActivator, registry *report.Registry, policy FailurePolicy, log *logger.Logger, publisher ports.EventPublisher) *ExecuteUseCase {
	return &ExecuteUseCase{
		defaults:  defaults,
		store:     store,
		activator: activator,
		registry:  registry,
		policy:    policy,
		logger:    log,
		events:    publisher,
	}
}

// Execute runs one invocation. Every failure is returned as a
// BuildStoppageError naming the stage that stopped.
func (u *ExecuteUseCase) Execute(ctx context.Context, req Request) (*ExecutionContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, u.stop(ctx, StageResolve, err)
	}

	dirs, err := ResolveDirectories(req.OutputDirectory, req.SourceDirectory, u.defaults, req.ProjectDirectory)
	if err != nil {
		return nil, u.stop(ctx, StageResolve, err)
	}

	execCtx := &ExecutionContext{
		OutputDirectory:      dirs.Output,
		SourceDirectory:      dirs.Source,
		ProjectBaseDirectory: dirs.Project,
		ProjectKey:           req.ProjectKey,
		RequirementsBaseDir:  req.RequirementsBaseDir,
		RequestedReportKinds: report.ParseKinds(req.Reports),
	}
	if execCtx.ProjectKey == "" {
		execCtx.ProjectKey = environment.DefaultProjectKey
	}

	u.logger.Info("preparing report execution",
		"output", dirs.Output,
		"source", dirs.Source,
		"project", dirs.Project,
	)
	publishEvent(ctx, u.events, u.logger, ports.EventExecutionStarted, map[string]interface{}{
		"output":  dirs.Output,
		"source":  dirs.Source,
		"reports": len(execCtx.RequestedReportKinds),
	})

	if err := ctx.Err(); err != nil {
		return execCtx, u.stop(ctx, StageConfigure, err)
	}
	u.store.SetProperty(environment.OutputDirectoryProperty, dirs.Output)
	ConfigureEnvironment(u.store, req.ProjectKey, req.RequirementsBaseDir)
	PublishVersionControl(u.store, dirs.Project, u.logger)

	if err := ctx.Err(); err != nil {
		return execCtx, u.stop(ctx, StageActivate, err)
	}
	project := ports.ProjectDescriptor{
		BaseDirectory:             dirs.Project,
		CompiledOutputDirectories: req.ClassesDirectories,
	}
	if err := u.activator.Activate(ctx, project); err != nil {
		return execCtx, u.stop(ctx, StageActivate, err)
	}

	if err := ctx.Err(); err != nil {
		return execCtx, u.stop(ctx, StageDispatch, err)
	}
	resolver := u.registry.Bind(report.Dependencies{
		OutputDirectory: dirs.Output,
		Store:           u.store,
		Logger:          u.logger,
	})
	dispatcher := NewDispatcher(resolver, u.policy, u.logger, u.events)
	if err := dispatcher.Dispatch(ctx, req.Reports, dirs.Source); err != nil {
		return execCtx, u.stop(ctx, StageDispatch, err)
	}

	publishEvent(ctx, u.events, u.logger, ports.EventExecutionCompleted, map[string]interface{}{
		"reports": len(execCtx.RequestedReportKinds),
	})
	return execCtx, nil
}

func (u *ExecuteUseCase) stop(ctx context.Context, stage string, err error) error {
	u.logger.Error(err, "report generation stopped", "stage", stage)
	publishEvent(ctx, u.events, u.logger, ports.EventExecutionFailed, map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
	return reporterrors.NewBuildStoppageError(stage, err)
}
