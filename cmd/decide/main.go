package main

import (
	"credable/internal/brain"
	"credable/internal/config"
	"credable/internal/decision"
	"credable/internal/model"
	"credable/internal/service"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "decide",
		Short:         "Run the CredAble mock decision engine from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(evaluateCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(traceCmd())
	rootCmd.AddCommand(tourCmd())

	return rootCmd
}

func evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate [company]",
		Short: "Print the full decision for a company as JSON",
		Long: `Evaluate hashes the company name into a seed and prints the decision:
signal timeline, brief, financing options, evidence and result strip.
Without a name the sample company is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), decision.Evaluate(firstArg(args)))
		},
	}
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [text]",
		Short: "Print the live signal preview for partially typed input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), decision.Preview(args[0]))
		},
	}
}

func traceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [company]",
		Short: "Replay the staged analysis console",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pacing, _ := cmd.Flags().GetFloat64("pacing")
			svc := service.NewDemoService(config.DemoConfig{Pacing: pacing}, zap.NewNop())

			out := cmd.OutOrStdout()
			d, err := svc.Run(cmd.Context(), firstArg(args), func(line model.TraceLine) error {
				_, err := fmt.Fprintf(out, "%6dms  %s\n", line.OffsetMS, line.Text)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s (risk %s): %s\n", d.Result.Decision, d.Result.RiskScore, d.Takeaway)
			return nil
		},
	}

	cmd.Flags().Float64P("pacing", "p", 0, "Timing scale (1 = site timing, 0 = immediate)")

	return cmd
}

func tourCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tour",
		Short: "Print the AI brain layout summary and guided tour keyframes",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := brain.NewLayout()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "AI Brain")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			for _, layer := range l.Layers {
				fmt.Fprintf(out, "  %-28s %3d nodes  z=%g\n", layer.Name, layer.NodeCount, layer.Z)
			}
			fmt.Fprintf(out, "  Connections: %d\n\n", l.Connections())

			return writeJSON(out, brain.TourScript(l))
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
