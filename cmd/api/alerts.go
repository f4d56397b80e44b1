package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/farmacia-api/internal/application/dto"
)

// alertsCmd calcula las alertas de rotación sin levantar el servidor,
// pensado para cron o revisiones manuales.
func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Genera las alertas de rotación de una organización",
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, _ := cmd.Flags().GetString("org")
			warehouseID, _ := cmd.Flags().GetString("warehouse")
			if orgID == "" {
				return errors.New("--org es requerido")
			}

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			pool, err := openPool(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			alerts, err := buildDeps(pool, cfg).AlertUC.Generate(ctx, orgID, warehouseID)
			if err != nil {
				return fmt.Errorf("generar alertas: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.AlertListResponse{
				Total:       len(alerts),
				Alerts:      alerts,
				GeneratedAt: time.Now().UTC(),
			})
		},
	}
	cmd.Flags().String("org", "", "ID de la organización")
	cmd.Flags().String("warehouse", "", "ID del dispensario (opcional)")
	return cmd
}
