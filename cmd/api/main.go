// farmacia-api expone la API HTTP del inventario de dispensarios y las
// tareas operativas (migraciones y alertas de rotación) como subcomandos.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "farmacia-api",
		Short: "Inventario multi-tenant para dispensarios y farmacias",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(alertsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
