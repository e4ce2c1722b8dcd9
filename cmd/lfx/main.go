package main

import (
	"fmt"

	"github.com/leaperfx/lfx/internal/cli"
	"github.com/leaperfx/lfx/internal/utils"
)

// main is the entry point for the lfx command.
func main() {
	applicationLogger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		panic(fmt.Errorf("configure application logger: %w", loggerError))
	}
	defer applicationLogger.Sync()

	if runError := cli.Execute(); runError != nil {
		applicationLogger.Fatal("lfx failed: " + runError.Error())
	}
}
