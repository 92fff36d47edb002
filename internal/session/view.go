package session

type MessageKind string

const (
	MessageInfo  MessageKind = "info"
	MessageError MessageKind = "error"
)

// Message is the single-slot notice panel. A new message replaces the old.
type Message struct {
	Kind MessageKind
	Text string
}

type Option struct {
	Value string
	Label string
}

// Select is one selection control: a placeholder first entry, then options.
type Select struct {
	Placeholder string
	Options     []Option
	Selected    string
	Disabled    bool
}

func (sel Select) HasOption(value string) bool {
	for _, option := range sel.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

// SelectedLabel returns the label of the chosen option, or the placeholder.
func (sel Select) SelectedLabel() string {
	for _, option := range sel.Options {
		if option.Value == sel.Selected {
			return option.Label
		}
	}
	return sel.Placeholder
}

type DetailsView struct {
	Title    string
	Position string
	GPSTime  string
}

// Results is the ETA panel. It only exists when there is something in it.
type Results struct {
	Details *DetailsView
	Lines   []string
}

// View is a snapshot of one session's screen. Front ends render it as-is.
type View struct {
	Stage       Stage
	FailedStage Stage
	Keyword     string
	Loading     bool
	Message     *Message
	Routes      Select
	Buses       Select
	EtaEnabled  bool
	Results     *Results
}

// SearchEnabled mirrors the search button: only a non-blank keyword.
func (view View) SearchEnabled() bool {
	return normalizeKeyword(view.Keyword) != ""
}

func (view View) clone() View {
	copied := view
	copied.Routes.Options = append([]Option(nil), view.Routes.Options...)
	copied.Buses.Options = append([]Option(nil), view.Buses.Options...)
	if view.Message != nil {
		message := *view.Message
		copied.Message = &message
	}
	if view.Results != nil {
		results := Results{Lines: append([]string(nil), view.Results.Lines...)}
		if view.Results.Details != nil {
			details := *view.Results.Details
			results.Details = &details
		}
		copied.Results = &results
	}
	return copied
}

func initialView() View {
	return View{
		Stage:  StageIdle,
		Routes: Select{Placeholder: PlaceholderSearchFirst, Disabled: true},
		Buses:  Select{Placeholder: PlaceholderRouteFirst, Disabled: true},
	}
}
