package machine

// EventType is the wire name of an event.
type EventType string

const (
	EventSyncConfig               EventType = "SYNC_CONFIG"
	EventUserTyped                EventType = "USER_TYPED"
	EventBaseModelUpdated         EventType = "BASE_MODEL_UPDATED"
	EventExternalModelChanged     EventType = "EXTERNAL_MODEL_CHANGED"
	EventCountrySelected          EventType = "COUNTRY_SELECTED"
	EventExternalCountryChanged   EventType = "EXTERNAL_COUNTRY_CHANGED"
	EventPopoverVisibilityChanged EventType = "POPOVER_VISIBILITY_CHANGED"
)

// Event is one input to Transition. The machine handles the value types
// declared in this file; any other Event is a no-op.
type Event interface {
	Type() EventType
}

// SyncConfig replaces the config and re-derives the snapshot under it.
type SyncConfig struct {
	Config Config
}

// UserTyped carries the raw text of the input after a keystroke.
type UserTyped struct {
	RawInput string
}

// BaseModelUpdated is a model value echoed back from the rendered base widget.
type BaseModelUpdated struct {
	Value NullString
}

// ExternalModelChanged is a model value pushed from outside the widget.
type ExternalModelChanged struct {
	Value NullString
}

// CountrySelected is a country picked by the user.
type CountrySelected struct {
	Value NullString
}

// ExternalCountryChanged is a country pushed from outside the widget.
type ExternalCountryChanged struct {
	Value NullString
}

// PopoverVisibilityChanged opens or closes the country popover.
type PopoverVisibilityChanged struct {
	Value bool
}

// Unknown is an event name the machine does not handle.
type Unknown struct {
	Name string
}

func (SyncConfig) Type() EventType               { return EventSyncConfig }
func (UserTyped) Type() EventType                { return EventUserTyped }
func (BaseModelUpdated) Type() EventType         { return EventBaseModelUpdated }
func (ExternalModelChanged) Type() EventType     { return EventExternalModelChanged }
func (CountrySelected) Type() EventType          { return EventCountrySelected }
func (ExternalCountryChanged) Type() EventType   { return EventExternalCountryChanged }
func (PopoverVisibilityChanged) Type() EventType { return EventPopoverVisibilityChanged }
func (u Unknown) Type() EventType                { return EventType(u.Name) }

// Fields carries the payload for ParseEvent. Only the fields relevant to the
// named event are read.
type Fields struct {
	RawInput string
	Value    NullString
	Visible  bool
	Config   Config
}

// ParseEvent builds a typed event from its wire name. Unrecognized names
// produce Unknown.
func ParseEvent(name string, f Fields) Event {
	switch EventType(name) {
	case EventSyncConfig:
		return SyncConfig{Config: f.Config}
	case EventUserTyped:
		return UserTyped{RawInput: f.RawInput}
	case EventBaseModelUpdated:
		return BaseModelUpdated{Value: f.Value}
	case EventExternalModelChanged:
		return ExternalModelChanged{Value: f.Value}
	case EventCountrySelected:
		return CountrySelected{Value: f.Value}
	case EventExternalCountryChanged:
		return ExternalCountryChanged{Value: f.Value}
	case EventPopoverVisibilityChanged:
		return PopoverVisibilityChanged{Value: f.Visible}
	default:
		return Unknown{Name: name}
	}
}
