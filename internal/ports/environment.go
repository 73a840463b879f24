package ports

// EnvironmentStore is the key/value configuration registry shared by the
// orchestrator and the report generators. Each key holds at most one value and
// the last writer wins. Implementations must be safe for concurrent use since
// other build steps may touch keys the orchestrator does not own.
type EnvironmentStore interface {
	SetProperty(key, value string)
	Property(key string) (string, bool)
	PropertyOr(key, fallback string) string
	Keys() []string
}

// Configuration supplies build-wide defaults consulted when an invocation
// leaves a directory unset.
type Configuration interface {
	OutputDirectory() string
}
