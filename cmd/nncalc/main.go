// Command nncalc is a two-register calculator over arbitrary-precision
// natural numbers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/nncalc/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "nncalc:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
