package shell

// ResolveEnvironment is exported for testing.
var ResolveEnvironment = resolveEnvironment
