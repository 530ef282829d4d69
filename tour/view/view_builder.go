package view

// ViewBuilderOption configures a View during construction.
type ViewBuilderOption func(*view)

// WithTitleSetter receives the window title whenever the current planet changes.
//
// Parameters:
//   - fn: the title sink, usually a window's SetTitle
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithTitleSetter(fn func(title string)) ViewBuilderOption {
	return func(v *view) {
		v.setTitle = fn
	}
}

// WithTitle sets the title prefix. The current planet's name is appended.
//
// Parameters:
//   - title: the prefix
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithTitle(title string) ViewBuilderOption {
	return func(v *view) {
		if title != "" {
			v.title = title
		}
	}
}

// WithPlanetChangeCallback observes current-planet changes after the view has handled them.
//
// Parameters:
//   - fn: receives the new index
//
// Returns:
//   - ViewBuilderOption: option function to apply
func WithPlanetChangeCallback(fn func(index int)) ViewBuilderOption {
	return func(v *view) {
		v.onChange = fn
	}
}
