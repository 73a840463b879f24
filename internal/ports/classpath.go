package ports

import "context"

// ProjectDescriptor identifies the build project whose compiled output should
// be visible to report generators.
type ProjectDescriptor struct {
	BaseDirectory             string
	CompiledOutputDirectories []string
}

// ClasspathActivator makes a project's compiled output available to later
// generator lookups. It runs once per execution, before any dispatch.
type ClasspathActivator interface {
	Activate(ctx context.Context, project ProjectDescriptor) error
}
