// Command vcashweb serves the Vcash news site and manages its post repository.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/vcashweb/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	// Commands report ExitErrors themselves; usage errors are printed here.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
