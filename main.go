package main

import (
	"os"

	"github.com/Carmen-Shannon/oxy-fireball/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
