package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vertex-lab/linkrank/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Compute the ranking and draw the top vertices",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "file to draw to (required)")
	renderCmd.Flags().String("format", "svg", "svg, png or dot")
	renderCmd.Flags().Int("top", 50, "how many vertices to draw, 0 means all")
	_ = renderCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	strFormat, _ := cmd.Flags().GetString("format")
	format, err := render.ParseFormat(strFormat)
	if err != nil {
		return err
	}

	env, err := setup(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ranked, err := compute(env.ctx, env.log, env.config)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetInt("top")
	if err := render.Render(file, ranked, format, top); err != nil {
		file.Close()
		return fmt.Errorf("failed to render %v: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %v: %w", path, err)
	}

	env.log.Info("Rendered the ranking to %v", path)
	return nil
}
