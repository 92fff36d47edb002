package main

import (
	"os"

	"tarediiran-industries.com/bus-eta-services/internal/web/bus_web"
)

func main() {
	os.Exit(bus_web.Main(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
