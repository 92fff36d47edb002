package main

import (
	"os"

	"tarediiran-industries.com/bus-eta-services/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args[1:], os.Stdout, os.Stderr))
}
