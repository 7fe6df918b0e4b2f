package domain

// PipelineState is the position of a pipeline run in its state machine.
type PipelineState string

const (
	// StateNotStarted is the initial state.
	StateNotStarted PipelineState = "not-started"
	// StateArtifactsEnsured means artifacts are current or were regenerated.
	StateArtifactsEnsured PipelineState = "artifacts-ensured"
	// StateToolchainInvoked means the toolchain exited successfully.
	StateToolchainInvoked PipelineState = "toolchain-invoked"
	// StatePackaged means the application tree was assembled.
	StatePackaged PipelineState = "packaged"
	// StateRan means the produced executable exited successfully.
	StateRan PipelineState = "ran"
	// StateDone is the terminal success state.
	StateDone PipelineState = "done"
	// StateFailed is the terminal failure state.
	StateFailed PipelineState = "failed"
)

// Stage names used in errors, logs and progress output.
const (
	StageArtifacts = "artifacts"
	StageToolchain = "toolchain"
	StagePackage   = "package"
	StageRun       = "run"
)
