package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"drivehub/pkg/apiresult"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app := newCLI()
	err := app.execute(ctx, app.rootCmd())
	stop()

	if err != nil {
		if !errors.Is(err, errCommandFailed) {
			fmt.Fprintln(os.Stderr, apiresult.Text(err, apiresult.GenericErrorMessage))
		}
		os.Exit(1)
	}
}
