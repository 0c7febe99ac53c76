package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/chronos/internal/cli/formatter"
	"github.com/alexanderramin/chronos/internal/loop"
)

const (
	scanInterval      = 15 * time.Minute
	wellbeingInterval = 24 * time.Hour
)

// newServeCmd runs the background loops in the foreground: the
// notification scan and the daily wellbeing tick. Delivered
// notifications are echoed when stdin is a terminal.
func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the notification scanner until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				runner := &loop.Runner{
					Name:     "notification-scan",
					Interval: scanInterval,
					Logger:   logger,
					Tick: func(ctx context.Context) error {
						return app.Notifications.Scan(ctx, time.Now().UTC())
					},
				}
				return runner.Run(ctx)
			})

			g.Go(func() error {
				runner := &loop.Runner{
					Name:     "wellbeing-daily",
					Interval: wellbeingInterval,
					Logger:   logger,
					Tick: func(ctx context.Context) error {
						return app.Wellbeing.DailyTick(ctx, time.Now().UTC())
					},
				}
				return runner.Run(ctx)
			})

			if app.IsInteractive == nil || app.IsInteractive() {
				ch, cancel := app.Notifications.Subscribe()
				defer cancel()
				g.Go(func() error {
					for {
						select {
						case <-ctx.Done():
							return ctx.Err()
						case n, ok := <-ch:
							if !ok {
								return nil
							}
							fmt.Printf("%s %s: %s\n",
								formatter.Bold("["+string(n.Type)+"]"), n.Title, n.Message)
						}
					}
				})
			}

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
