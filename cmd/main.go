package main

import (
	"os"

	"github.com/DiversioTeam/ClassQuiz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
