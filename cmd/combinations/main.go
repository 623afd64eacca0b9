// Command combinations lists every combination of denominations that sums
// to a target, or serves the same search over HTTP.
//
// @title           Combination Service API
// @version         1.0.0
// @description     Enumerates every combination (with repetition) of denominations summing exactly to a target.
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guttosm/combination-service/cmd/combinations/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second signal after cancellation terminates immediately.
		<-ctx.Done()
		stop()
	}()

	if err := commands.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "combinations:", err)
		stop()
		os.Exit(1)
	}
}
