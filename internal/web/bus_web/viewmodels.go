package bus_web

type OptionVM struct {
	Value    string
	Label    string
	Selected bool
}

type SelectVM struct {
	Placeholder string
	Options     []OptionVM
	Disabled    bool
}

type MessageVM struct {
	Kind string
	Text string
}

type ResultsVM struct {
	Visible  bool
	Title    string
	Position string
	GPSTime  string
	Lines    []string
}

type EtaPageVM struct {
	Keyword       string
	SearchEnabled bool
	Loading       bool
	Stage         string
	Message       *MessageVM
	Routes        SelectVM
	Buses         SelectVM
	EtaEnabled    bool
	Results       ResultsVM
}

type PlatesPageVM struct {
	Plates  []string
	Message string
	IsError bool
}
