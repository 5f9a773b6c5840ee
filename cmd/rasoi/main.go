// Command rasoi is the operational CLI: serve the API, seed the database,
// list the registered routes.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/rasoi/config"
	"github.com/shashiranjanraj/rasoi/database/seeders"
	"github.com/shashiranjanraj/rasoi/internal/server"
	"github.com/shashiranjanraj/rasoi/pkg/database"
)

func main() {
	root := &cobra.Command{
		Use:           "rasoi",
		Short:         "Catering marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), seedCmd(), routeListCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

func seedCmd() *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the admin account (and optionally demo data)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			if err := database.Connect(); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			defer database.Disconnect(context.Background())

			return seeders.Run(ctx, database.DB(), demo)
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "also seed a demo manager, service and menu")
	return cmd
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "Print the named routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			if err := database.Connect(); err != nil {
				return err
			}
			defer database.Disconnect(context.Background())

			r := server.New(database.DB())
			table := r.Routes()

			names := make([]string, 0, len(table))
			for name := range table {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-28s %s\n", name, table[name])
			}
			return nil
		},
	}
}
