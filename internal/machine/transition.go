package machine

// Transition returns the state that follows s after ev. It is pure and total:
// nil, Unknown, and foreign Event implementations return s unchanged.
func Transition(s State, ev Event) State {
	switch e := ev.(type) {
	case SyncConfig:
		base := s.RawInput
		if base == "" {
			base = s.ModelValue.OrEmpty()
		}
		s.Snapshot = Derive(base, e.Config)
		s.Config = e.Config
		return s

	case UserTyped:
		// Normalization only. The model is committed by a later model event.
		s.Snapshot = Derive(e.RawInput, s.Config)
		return s

	case BaseModelUpdated:
		return withModel(s, e.Value)

	case ExternalModelChanged:
		return withModel(s, e.Value)

	case CountrySelected:
		s.Country = e.Value.orNull()
		return s

	case ExternalCountryChanged:
		s.Country = e.Value.orNull()
		return s

	case PopoverVisibilityChanged:
		s.UI.IsPopoverShown = e.Value
		return s

	default:
		return s
	}
}

func withModel(s State, v NullString) State {
	s.Snapshot = Derive(v.OrEmpty(), s.Config)
	s.ModelValue = v.orNull()
	return s
}
