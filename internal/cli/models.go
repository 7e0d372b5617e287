package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dshills/diffreview/internal/providers"
	"github.com/dshills/diffreview/internal/review"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Provider and model information",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers and the models each one uses",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		var last providers.Provider
		for _, sel := range providers.Table() {
			if sel.Provider != last {
				if last != "" {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s:\n", sel.Provider)
				last = sel.Provider
			}
			label := "default"
			if sel.Strength == providers.Strong {
				label = "--pro"
			}
			fmt.Fprintf(w, "  - %s (%s)\n", sel.ModelID, label)
		}
	},
}

// doctorTimeout bounds the check. Reviews themselves carry no deadline.
const doctorTimeout = 60 * time.Second

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate provider credentials with one tiny generation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(buildOverrides())
		if err != nil {
			return err
		}

		p := parseProvider(cfg.Provider)
		fmt.Fprintf(cmd.OutOrStdout(), "Checking %s...\n", p)

		ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
		defer cancel()

		res, err := newDispatcher(cfg).Review(ctx, review.Request{
			Diff:           "+ok",
			Instructions:   "Reply with the single word ok.",
			Provider:       p,
			APIKey:         resolveAPIKey(p),
			UseStrongModel: cfg.UseProModel,
		})
		if err != nil {
			fail(cmd, exitCodeFor(err), "FAIL: %v", err)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s (%s) is configured and responding\n", p, res.Model)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider to check")
	modelsDoctorCmd.Flags().BoolVar(&flagPro, "pro", false, "Check the stronger model")
	modelsDoctorCmd.Flags().StringVar(&flagAPIKey, "api-key", "", "API key (default: the provider's environment variable)")
}
