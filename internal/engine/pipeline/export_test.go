package pipeline

// SetRunIDFunc replaces the run id generator.
func (s *Sequencer) SetRunIDFunc(f func() string) {
	s.newRunID = f
}

// SetHostOS overrides the host platform used for toolchain commands.
func (s *ToolchainStage) SetHostOS(goos string) {
	s.hostOS = goos
}
