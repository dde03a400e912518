package main

import (
	"os"

	"github.com/studytrack/studytrack/app"
	"github.com/studytrack/studytrack/internal/config"
	"github.com/studytrack/studytrack/internal/pathutil"
	"github.com/studytrack/studytrack/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		report.Quit(config.Stderr, err, pathutil.LogFilePath())
	}
}
