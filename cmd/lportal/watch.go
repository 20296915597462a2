package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lawnjelly/lportal/lportal"
)

var (
	watchMetricsAddr string
	watchConfigPath  string
)

var watchCmd = &cobra.Command{
	Use:   "watch <scene.yaml|scene.gltf>",
	Short: "Re-run convert every time the scene file changes, for an artist iterating on room layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics", "", "expose Prometheus metrics on this address (e.g. :9090); empty disables metrics")
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "lportal.toml", "optional config file")
	rootCmd.AddCommand(watchCmd)
}

// runWatch serialises re-conversions: one Convert call is ever in flight,
// and a file event arriving mid-conversion is coalesced rather than
// queued, since the core itself has no concurrency model at all.
func runWatch(cmd *cobra.Command, args []string) error {
	scenePath := args[0]
	cfg, err := loadConfig(watchConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var metrics *cliMetrics
	if watchMetricsAddr == "" {
		watchMetricsAddr = cfg.MetricsListen
	}
	if watchMetricsAddr != "" {
		metrics = newCLIMetrics()
		go func() {
			if err := serveMetrics(watchMetricsAddr); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), styleError.Render("metrics server: ")+err.Error())
			}
		}()
		fmt.Fprintln(cmd.OutOrStdout(), stat("metrics", watchMetricsAddr))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(scenePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %q: %w", dir, err)
	}

	convert := func() {
		s, root, err := loadScene(scenePath)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), styleError.Render("load error: ")+err.Error())
			return
		}
		start := time.Now()
		m := lportal.Convert(s, root, lportal.Options{
			PoolCapacity: cfg.PoolCapacity,
			PlaneDistTol: cfg.PlaneDistTol,
			PlaneNormTol: cfg.PlaneNormTol,
			WarnSink: func(msg string) {
				if metrics != nil {
					metrics.recordWarning(msg)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), styleWarn.Render("warning: ")+msg)
			},
		})
		if metrics != nil {
			metrics.conversions.Inc()
			metrics.duration.Observe(time.Since(start).Seconds())
		}
		fmt.Fprintln(cmd.OutOrStdout(), styleHeading.Render(fmt.Sprintf("converted %s", scenePath)),
			stat("rooms", len(m.Rooms)), stat("portals", len(m.Portals)), stat("objects", len(m.Objects)))
	}

	convert()

	// Debounce bursts of events fsnotify delivers for a single editor
	// save (write, then chmod, then rename-into-place on some editors)
	// into one re-conversion. The conversion runs on this loop's own
	// goroutine, so events that arrive while it runs wait and are then
	// debounced together.
	var pending *time.Timer
	var fire <-chan time.Time
	const debounce = 150 * time.Millisecond
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(scenePath) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.NewTimer(debounce)
			fire = pending.C
		case <-fire:
			fire = nil
			convert()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), styleError.Render("watch error: ")+err.Error())
		case <-cmd.Context().Done():
			return nil
		}
	}
}
