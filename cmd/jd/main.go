package main

import (
	"os"

	"github.com/Yogerlan/json-decoder/internal/config"
	"github.com/Yogerlan/json-decoder/internal/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	r, exitResult := runner.New(cfg)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	return r.Run()
}
