package main

import (
	"fmt"
	"os"

	"github.com/oakwood-commons/gridcol/cmd"
	"github.com/oakwood-commons/gridcol/pkg/logger"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != cmd.ExitOK {
		os.Exit(code)
	}
}
