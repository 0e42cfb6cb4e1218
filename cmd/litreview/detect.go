// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Run an object-detection model on an image and save an annotated copy",
	Long: `Detect runs a pretrained YOLO model inside a container (docker or podman,
whichever is on PATH) on one image and saves a copy with the detections
drawn. The output defaults to <name>_annotated<ext> beside the input.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	input := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = detect.DefaultOutput(input)
	}

	rt, err := detect.DetectRuntime(cmd.Context())
	if err != nil {
		return err
	}
	d := &detect.Detector{Runtime: rt, Config: cfg.Detect, Logger: logger}
	res, err := d.Run(cmd.Context(), input, output)
	if err != nil {
		return err
	}
	if res.Log != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Log)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Annotated image saved as %s (%s)\n", res.Output, humanize.Bytes(uint64(res.Bytes)))
	return nil
}

func init() {
	detectCmd.Flags().String("output", "", "annotated image path")
	detectCmd.Flags().String("image", cfg.Detect.Image, "container image with the detection runtime")
	detectCmd.Flags().String("model", cfg.Detect.Model, "model weights")
	configKey(detectCmd.Flags(), "image", "detect.image")
	configKey(detectCmd.Flags(), "model", "detect.model")

	rootCmd.AddCommand(detectCmd)
}
