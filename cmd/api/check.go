package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhnext/launchpad/internal/application"
	appcompliance "github.com/dhnext/launchpad/internal/application/compliance"
	"github.com/dhnext/launchpad/internal/middleware"
)

var checkCmd = &cobra.Command{
	Use:   "check <pageUrl>",
	Short: "run one compliance check and print the result envelope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if s := k.String("strategy"); s != "" {
			cfg.Extraction.Strategy = s
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		tenant := k.String("tenant")
		if err := middleware.ValidateTenantID(tenant); err != nil {
			return err
		}

		kv, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer closeStore()

		extractor, err := newExtractor(cfg)
		if err != nil {
			return err
		}

		svc := appcompliance.NewService(newFetcher(cfg), extractor, kv, application.SystemClock{})
		result := svc.RunComplianceCheck(cmd.Context(), tenant, args[0])

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("tenant", "cli", "tenant namespace to store the result under")
	checkCmd.Flags().String("strategy", "", "override extraction.strategy (keyword or ai)")
}
