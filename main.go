package main

import (
	"os"

	"github.com/harrisonrobin/agenda/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
