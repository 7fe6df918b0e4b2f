package resolver

// SetGOOS overrides the host platform used to pick the default target.
func (r *Resolver) SetGOOS(goos string) {
	r.goos = goos
}
