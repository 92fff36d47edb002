package bus_web

import "errors"

var errNoPlateSource = errors.New("no plate source configured")
