package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/usagectl/internal/telemetry"
	"github.com/janekbaraniewski/usagectl/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	if os.Getenv("USAGECTL_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	_ = godotenv.Load()

	ctx := context.Background()
	tracer, shutdown, err := telemetry.Setup(ctx, "usagectl")
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	root := &cobra.Command{
		Use:           "usagectl",
		Short:         "usagectl reports remaining usage quota for AI assistant accounts.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newClaudeCommand(tracer),
		newCodexCommand(tracer),
		newCodexAgentCommand(tracer),
		newVersionCommand(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the usagectl version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.String())
		},
	}
}
