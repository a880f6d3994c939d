package cli

import (
	"fmt"
	"os"

	"github.com/eunmann/algobench/pkg/membudget"
)

// memBudgetEnv overrides the automatic budget when --mem-budget is absent.
const memBudgetEnv = "ALGOBENCH_MEM_BUDGET"

// determineMemoryBudget resolves the budget in priority order: the
// --mem-budget flag, ALGOBENCH_MEM_BUDGET, the config file, then 50% of
// system RAM.
func determineMemoryBudget(cliValue, fileValue string) (*membudget.Budget, error) {
	if cliValue != "" {
		n, err := membudget.ParseHumanSize(cliValue)
		if err != nil {
			return nil, fmt.Errorf("invalid --mem-budget: %w", err)
		}
		return membudget.New(membudget.Config{TotalBytes: n, Source: membudget.BudgetSourceCLI}), nil
	}

	if envValue := os.Getenv(memBudgetEnv); envValue != "" {
		n, err := membudget.ParseHumanSize(envValue)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", memBudgetEnv, err)
		}
		return membudget.New(membudget.Config{TotalBytes: n, Source: membudget.BudgetSourceEnv}), nil
	}

	if fileValue != "" {
		n, err := membudget.ParseHumanSize(fileValue)
		if err != nil {
			return nil, fmt.Errorf("invalid mem_budget in config file: %w", err)
		}
		return membudget.New(membudget.Config{TotalBytes: n, Source: membudget.BudgetSourceConfig}), nil
	}

	return membudget.NewFromSystemRAM(), nil
}
