package commands

// Filter returns the subset of all that spec's handler can accept. When the
// spec accepts arbitrary keywords the input map is returned unchanged.
func Filter(spec CommandSpec, all Args) Args {
	if spec.AcceptsArbitraryKeywords {
		return all
	}
	filtered := make(Args, len(spec.AcceptedParams))
	for name, value := range all {
		if spec.Accepts(name) {
			filtered[name] = value
		}
	}
	return filtered
}
