package bus_web

import (
	"tarediiran-industries.com/bus-eta-services/internal/plates"
	"tarediiran-industries.com/bus-eta-services/internal/session"
)

func BuildSelectVM(sel session.Select) SelectVM {
	options := make([]OptionVM, 0, len(sel.Options))
	for _, option := range sel.Options {
		options = append(options, OptionVM{
			Value:    option.Value,
			Label:    option.Label,
			Selected: option.Value == sel.Selected,
		})
	}
	return SelectVM{
		Placeholder: sel.Placeholder,
		Options:     options,
		Disabled:    sel.Disabled,
	}
}

func BuildResultsVM(results *session.Results) ResultsVM {
	if results == nil {
		return ResultsVM{}
	}

	vm := ResultsVM{Visible: true, Lines: results.Lines}
	if details := results.Details; details != nil {
		vm.Title = details.Title
		vm.Position = details.Position
		vm.GPSTime = details.GPSTime
	}
	return vm
}

func BuildEtaPageVM(view session.View) EtaPageVM {
	vm := EtaPageVM{
		Keyword:       view.Keyword,
		SearchEnabled: view.SearchEnabled(),
		Loading:       view.Loading,
		Stage:         view.Stage.String(),
		Routes:        BuildSelectVM(view.Routes),
		Buses:         BuildSelectVM(view.Buses),
		EtaEnabled:    view.EtaEnabled,
		Results:       BuildResultsVM(view.Results),
	}
	if view.Message != nil {
		vm.Message = &MessageVM{Kind: string(view.Message.Kind), Text: view.Message.Text}
	}
	return vm
}

func BuildPlatesPageVM(list plates.ListView) PlatesPageVM {
	return PlatesPageVM{
		Plates:  list.Plates,
		Message: list.Message,
		IsError: list.IsError,
	}
}
