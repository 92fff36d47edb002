package common

// Overridden at build time:
//
//	go build -ldflags "-X tarediiran-industries.com/bus-eta-services/internal/common.Version=v1.2.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
)
