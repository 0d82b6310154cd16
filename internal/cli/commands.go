package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
)

func newStatusCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show career progress and whether a save can be resumed",
		Args:  noArgs("status"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			out := cmd.OutOrStdout()
			progress := e.gw.LoadProgress()
			fmt.Fprintf(out, "Progress: case #%d (%s)\n", progress, court.TierFor(progress).Label())
			snap, ok := e.gw.LoadSnapshot()
			if !ok {
				fmt.Fprintln(out, "Save: none")
				return nil
			}
			fmt.Fprintf(out, "Save: %s, %s, %d transcript entries\n", snap.Case.Title, snap.Phase, snap.Transcript.Len())
			return nil
		},
	}
}

func newResetCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start the career over: progress back to 1, save discarded",
		Args:  noArgs("reset"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.gw.SaveProgress(1); err != nil {
				return err
			}
			if err := e.gw.ClearSnapshot(); err != nil {
				return err
			}
			e.log.Info("career reset")
			fmt.Fprintln(cmd.OutOrStdout(), "progress reset to case #1; save cleared")
			return nil
		},
	}
}

func newCaseCommand(flags *globalFlags) *cobra.Command {
	var progress int
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Generate a case through the configured oracle and print it as JSON",
		Args:  noArgs("case"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("progress") && progress < 1 {
				return UsageError{Message: fmt.Sprintf("--progress must be at least 1, got %d", progress)}
			}
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			if !cmd.Flags().Changed("progress") {
				progress = e.gw.LoadProgress()
			}
			svc, err := e.newOracle(cmd.Context())
			if err != nil {
				return err
			}
			c, err := svc.GenerateCase(cmd.Context(), progress)
			if err != nil {
				e.log.Error("case generation failed", zap.Int("progress", progress), zap.Error(err))
				return err
			}

			b, err := json.MarshalIndent(c, "", "  ")
			if err != nil {
				return fmt.Errorf("encode case: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().IntVar(&progress, "progress", 0, "case number to generate for (default: current progress)")
	return cmd
}

func newSettingsCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "List player settings",
		Args:  noArgs("settings"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			printSettings(cmd, e.gw.LoadSettings())
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a player setting",
		Args:  exactArgs(2, "<key> <value>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			if _, ok := config.LookupOption(key); !ok {
				return UsageError{Message: fmt.Sprintf("unknown setting %q (run `hakim settings`)", key)}
			}
			value, err := config.ParseOptionValue(key, raw)
			if err != nil {
				return UsageError{Message: err.Error()}
			}

			e, err := openEnv(flags)
			if err != nil {
				return err
			}
			defer e.Close()

			next, err := e.gw.LoadSettings().With(key, value)
			if err != nil {
				return err
			}
			if err := e.gw.SaveSettings(next.Normalize()); err != nil {
				return err
			}
			e.log.Info("setting changed", zap.String("key", key), zap.String("value", next.FormatValue(key)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, next.FormatValue(key))
			return nil
		},
	}
	cmd.AddCommand(set)
	return cmd
}

func printSettings(cmd *cobra.Command, s config.Settings) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tVALUE\tRANGE")
	for _, opt := range config.OptionRegistry() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", opt.KeyPath, opt.DisplayName, s.FormatValue(opt.KeyPath), formatRange(opt))
	}
	_ = w.Flush()
}

func formatRange(opt config.OptionMetadata) string {
	if opt.Type == config.OptionTypeLevel {
		return fmt.Sprintf("%d-%d%%", int(opt.Bounds.Min*100), int(opt.Bounds.Max*100))
	}
	return strconv.Itoa(int(opt.Bounds.Min)) + "-" + strconv.Itoa(int(opt.Bounds.Max))
}
