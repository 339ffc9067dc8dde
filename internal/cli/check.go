package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quiz-manager/internal/config"
	"quiz-manager/internal/infra/fixture"
)

// NewCheckCmd validates the config file and any referenced fixtures without
// starting the server. Useful as a deploy-time gate.
func NewCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate config and fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(*configPath)
		},
	}
}

func runCheck(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Fixtures.Path == "" {
		fmt.Println("config ok (no fixtures configured)")
		return nil
	}

	fixtures, err := fixture.Parse(cfg.Fixtures.Path)
	if err != nil {
		return err
	}
	fmt.Printf("config ok, %d fixture quiz(es) valid\n", len(fixtures.Quizzes))
	return nil
}
