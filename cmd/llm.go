package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masterly/internal/llm"
	"github.com/abhisek/masterly/internal/store"
)

func newLLMCmd(e *env) *cobra.Command {
	llmCmd := &cobra.Command{
		Use:   "llm",
		Short: "Inspect recorded LLM requests",
	}

	var (
		limit   int
		purpose string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM requests with estimated cost",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := e.store.EventRepo().QueryLLMRequests(ctxOf(cmd), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No LLM requests recorded.")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-26s  %-6s  %-6s  %-7s  %-9s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
			fmt.Fprintln(out, strings.Repeat("─", 108))

			var total float64
			partial := false
			for _, ev := range events {
				if purpose != "" && ev.Purpose != purpose {
					continue
				}
				ok := "✓"
				if !ev.Success {
					ok = "✗"
				}
				cost := "?"
				if c, known := llm.EstimateCost(ev.Model, ev.InputTokens, ev.OutputTokens); known {
					cost = formatCost(c)
					total += c
				} else {
					partial = true
				}
				fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-26s  %-6d  %-6d  %-7d  %-9s  %s\n",
					ev.ID,
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					truncate(ev.Purpose, 14),
					truncate(ev.Model, 26),
					ev.InputTokens,
					ev.OutputTokens,
					ev.LatencyMs,
					cost,
					ok,
				)
				if ev.ErrorMessage != "" {
					fmt.Fprintf(out, "       %s\n", truncate(ev.ErrorMessage, 100))
				}
			}

			fmt.Fprintln(out, strings.Repeat("─", 108))
			label := "Total"
			if partial {
				label = "Total (partial)"
			}
			fmt.Fprintf(out, "%s: %s\n", label, formatCost(total))
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of requests to show")
	listCmd.Flags().StringVarP(&purpose, "purpose", "p", "", "Filter by purpose (e.g. question-draft)")

	llmCmd.AddCommand(listCmd)
	return llmCmd
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
