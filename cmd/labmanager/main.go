package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"labmanager/internal/interfaces/cli/migrate"
	"labmanager/internal/interfaces/cli/server"
	"labmanager/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "labmanager",
		Short:        "Labmanager - research institution management API",
		Long:         `Labmanager serves the REST API for faculties, laboratories, researchers and their output, with migration and account tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
