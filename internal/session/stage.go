package session

// Stage is where a session is in the keyword -> route -> bus -> ETA flow.
type Stage int

const (
	StageIdle Stage = iota
	StageRouteSearching
	StageRouteReady
	StageBusLoading
	StageBusReady
	StageEtaPending
	StageEtaLoading
	StageEtaReady
	StageFailed
)

var stageNames = map[Stage]string{
	StageIdle:           "idle",
	StageRouteSearching: "route_searching",
	StageRouteReady:     "route_ready",
	StageBusLoading:     "bus_loading",
	StageBusReady:       "bus_ready",
	StageEtaPending:     "eta_pending",
	StageEtaLoading:     "eta_loading",
	StageEtaReady:       "eta_ready",
	StageFailed:         "failed",
}

func (stage Stage) String() string {
	if name, ok := stageNames[stage]; ok {
		return name
	}
	return "unknown"
}
