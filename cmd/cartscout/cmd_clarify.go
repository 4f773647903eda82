package main

import (
	"fmt"
	"strings"

	"cartscout/internal/api"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	clarifyItems   []string
	clarifyContext []string
)

// clarifyCmd resolves item names against the clarification endpoint without
// submitting a job. Lookups run concurrently; output keeps input order.
var clarifyCmd = &cobra.Command{
	Use:     "clarify",
	Short:   "Normalize item names without running a price search",
	Example: `  cartscout clarify --items "whole milk,blk beans"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(clarifyItems) == 0 {
			return fmt.Errorf("at least one --items entry is required")
		}

		timeout, err := cfg.BackendTimeout()
		if err != nil {
			return err
		}
		client := api.New(api.Config{BaseURL: cfg.Backend.BaseURL, Timeout: timeout})

		resolved := make([]*api.ClarifyResult, len(clarifyItems))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(4)
		for i, item := range clarifyItems {
			i, item := i, item
			g.Go(func() error {
				res, err := client.Clarify(ctx, item, clarifyContext)
				if err != nil {
					return fmt.Errorf("clarify %q: %w", item, err)
				}
				resolved[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		logger.Debug("clarified items", zap.Int("count", len(clarifyItems)))

		for i, item := range clarifyItems {
			res := resolved[i]
			if res.Suggested == nil {
				fmt.Printf("%-30s -> (no suggestion)\n", item)
				continue
			}
			line := res.Suggested.Name
			if len(res.Alternatives) > 0 {
				alts := make([]string, 0, len(res.Alternatives))
				for _, a := range res.Alternatives {
					alts = append(alts, a.Name)
				}
				line += fmt.Sprintf("  (also: %s)", strings.Join(alts, ", "))
			}
			fmt.Printf("%-30s -> %s\n", item, line)
		}
		return nil
	},
}

func init() {
	clarifyCmd.Flags().StringSliceVar(&clarifyItems, "items", nil, "comma-separated item names to normalize")
	clarifyCmd.Flags().StringSliceVar(&clarifyContext, "context", nil, "already-confirmed item names for disambiguation")
	_ = clarifyCmd.MarkFlagRequired("items")
}
