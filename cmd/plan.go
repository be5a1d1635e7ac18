package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	planapi "github.com/gridops/powerplan/api/plan"
	"github.com/gridops/powerplan/core/model"
	"github.com/gridops/powerplan/core/plan"
	"github.com/gridops/powerplan/qa/scenarios"
)

var (
	requestPath  string
	scenarioPath string
	lpFirst      bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a one-shot production plan and print it as JSON",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&requestPath, "request", "", "production plan request file (JSON)")
	planCmd.Flags().StringVar(&scenarioPath, "scenario", "", "QA scenario file (YAML)")
	planCmd.Flags().BoolVar(&lpFirst, "lp-first", false, "solve the linear relaxation before the merit-order walk")
}

func runPlan(cmd *cobra.Command, args []string) error {
	units, fuels, load, err := loadPlanInput()
	if err != nil {
		return err
	}

	planner := plan.Planner{LPFirst: lpFirst}
	result, err := planner.Compute(units, fuels, load)
	if err != nil {
		return fmt.Errorf("compute plan: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func loadPlanInput() ([]model.Unit, model.Fuels, float64, error) {
	switch {
	case requestPath != "" && scenarioPath != "":
		return nil, model.Fuels{}, 0, fmt.Errorf("--request and --scenario are mutually exclusive")
	case requestPath != "":
		data, err := os.ReadFile(requestPath)
		if err != nil {
			return nil, model.Fuels{}, 0, fmt.Errorf("read request: %w", err)
		}
		var req planapi.Request
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, model.Fuels{}, 0, fmt.Errorf("parse request: %w", err)
		}
		return req.Powerplants, req.Fuels, req.Load, nil
	case scenarioPath != "":
		sc, err := scenarios.Load(scenarioPath)
		if err != nil {
			return nil, model.Fuels{}, 0, fmt.Errorf("load scenario: %w", err)
		}
		units := make([]model.Unit, len(sc.Units))
		for i, def := range sc.Units {
			u, err := def.ToModel()
			if err != nil {
				return nil, model.Fuels{}, 0, err
			}
			units[i] = u
		}
		return units, sc.Fuels.ToModel(), sc.Load, nil
	default:
		return nil, model.Fuels{}, 0, fmt.Errorf("either --request or --scenario is required")
	}
}
