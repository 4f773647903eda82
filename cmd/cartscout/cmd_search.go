package main

import (
	"fmt"
	"time"

	"cartscout/internal/api"
	"cartscout/internal/cart"
	"cartscout/internal/poll"
	"cartscout/internal/results"
	"cartscout/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	searchItems  []string
	searchZip    string
	searchNearby bool
)

// searchCmd runs one submit-and-poll cycle without the interactive UI.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Submit a fixed item list and print the best prices",
	Example: `  cartscout search --items milk,eggs,bread --zip 02139
  cartscout search --items "olive oil" --zip 94110 --nearby`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(searchItems) == 0 {
			return fmt.Errorf("at least one --items entry is required")
		}

		sess := session.New()
		sess.SetZipInput(searchZip)
		if !sess.ZipValid() {
			return fmt.Errorf("ZIP code must be exactly 5 digits, got %q", searchZip)
		}
		sess.PrioritizeNearby = searchNearby

		for _, item := range searchItems {
			if notice := sess.Cart.Add(item); notice != cart.NoticeAdded {
				logger.Warn("item skipped", zap.String("item", item), zap.String("reason", notice.String()))
			}
		}
		if sess.Cart.Len() == 0 {
			return fmt.Errorf("no usable items in the list")
		}

		timeout, err := cfg.BackendTimeout()
		if err != nil {
			return err
		}
		interval, err := cfg.PollInterval()
		if err != nil {
			return err
		}
		client := api.New(api.Config{BaseURL: cfg.Backend.BaseURL, Timeout: timeout})

		ctx := cmd.Context()
		jobID, err := client.SubmitCart(ctx, sess.Cart.Items(), sess.Zip, sess.PrioritizeNearby)
		if err != nil {
			return fmt.Errorf("submit cart: %w", err)
		}
		logger.Info("job accepted", zap.String("job_id", jobID), zap.Int("items", sess.Cart.Len()))

		poller := poll.New(client, interval)
		defer poller.Stop()

		start := time.Now()
		for ev := range poller.Start(ctx, jobID) {
			if terminal, err := applySearchEvent(sess, ev); terminal {
				if err != nil {
					return err
				}
				break
			}
		}

		groups := results.Build(sess.Cart.Items(), sess.Results)
		summary := results.Summarize(sess.Cart.Items(), sess.Results, sess.TotalTime)
		logger.Info("search complete",
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("items_with_results", summary.ItemsWithResults))

		fmt.Print(results.RenderText(groups, summary))
		return nil
	},
}

func applySearchEvent(sess *session.Session, ev poll.Event) (bool, error) {
	terminal := sess.ApplyPoll(ev)
	switch {
	case ev.Err != nil:
		return true, fmt.Errorf("polling aborted: %w", ev.Err)
	case ev.Status.Status == api.StatusFailed:
		return true, fmt.Errorf("pricing job %s failed", sess.JobID)
	case ev.Status.Status == api.StatusQueued:
		if ev.Status.QueuePosition != nil {
			logger.Info("queued", zap.Int("position", *ev.Status.QueuePosition))
		} else {
			logger.Info("queued", zap.String("position", "unknown"))
		}
	case ev.Status.Status == api.StatusProcessing:
		logger.Debug("processing", zap.Int("tick", ev.Tick), zap.Int("progress", sess.Progress))
	}
	return terminal, nil
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchItems, "items", nil, "comma-separated item names")
	searchCmd.Flags().StringVar(&searchZip, "zip", "", "5-digit ZIP code")
	searchCmd.Flags().BoolVar(&searchNearby, "nearby", false, "prioritize nearby stores")
	_ = searchCmd.MarkFlagRequired("items")
	_ = searchCmd.MarkFlagRequired("zip")
}
