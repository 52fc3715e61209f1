package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanklogix/loadplan/app"
	"github.com/tanklogix/loadplan/config"
	"github.com/tanklogix/loadplan/core/plan"
)

var requestPath string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a one-shot plan from a request file and print it as JSON",
	RunE:  planOnce,
}

func init() {
	planCmd.Flags().StringVarP(&requestPath, "request", "r", "", "planning request file (JSON)")
	_ = planCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(planCmd)
}

func planOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	data, err := os.ReadFile(requestPath)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	var req plan.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}

	res, err := svc.PlanFromRequest(context.Background(), req, "cli")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
