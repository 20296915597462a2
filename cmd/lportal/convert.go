package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawnjelly/lportal/lportal"
)

var (
	convertOut        string
	convertConfigPath string
)

var convertCmd = &cobra.Command{
	Use:   "convert <scene.yaml|scene.gltf>",
	Short: "Run the conversion core once and report room/portal/object/light counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "write a JSON report to this path; no report is written when empty")
	convertCmd.Flags().StringVar(&convertConfigPath, "config", "lportal.toml", "optional config file")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(convertConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, root, err := loadScene(args[0])
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	start := time.Now()
	m := lportal.Convert(s, root, lportal.Options{
		PoolCapacity: cfg.PoolCapacity,
		PlaneDistTol: cfg.PlaneDistTol,
		PlaneNormTol: cfg.PlaneNormTol,
		WarnSink: func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), styleWarn.Render("warning: ")+msg)
		},
	})
	elapsed := time.Since(start)

	fmt.Fprintln(cmd.OutOrStdout(), styleHeading.Render("lportal convert"))
	fmt.Fprintln(cmd.OutOrStdout(), stat("rooms", len(m.Rooms)))
	fmt.Fprintln(cmd.OutOrStdout(), stat("portals", len(m.Portals)))
	fmt.Fprintln(cmd.OutOrStdout(), stat("objects", len(m.Objects)))
	fmt.Fprintln(cmd.OutOrStdout(), stat("lights", len(m.Lights)))
	fmt.Fprintln(cmd.OutOrStdout(), stat("duration", elapsed))

	if convertOut != "" {
		return writeReport(convertOut, buildReport(m))
	}
	return nil
}
