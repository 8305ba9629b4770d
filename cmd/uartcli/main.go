package main

import (
	"github.com/robotalks/uart.go/pkg/cli/sh"

	_ "github.com/robotalks/uart.go/pkg/cli/cmds/remote"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
