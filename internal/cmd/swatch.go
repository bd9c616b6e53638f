package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/MeKo-Tech/colorsync/internal/swatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var swatchCmd = &cobra.Command{
	Use:   "swatch <value>",
	Short: "Render a color as a PNG swatch",
	Args:  cobra.ExactArgs(1),
	RunE:  runSwatch,
}

func init() {
	rootCmd.AddCommand(swatchCmd)

	swatchCmd.Flags().StringP("output", "o", "", "Output PNG file path (required)")
	swatchCmd.Flags().Int("width", swatch.DefaultWidth, "Swatch width in pixels")
	swatchCmd.Flags().Int("height", swatch.DefaultHeight, "Swatch height in pixels")
	swatchCmd.Flags().Bool("hidpi", false, "Render at 2x")
	swatchCmd.Flags().Bool("label", true, "Print the hex value on the swatch")
	swatchCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"swatch.output", "output"},
		{"swatch.width", "width"},
		{"swatch.height", "height"},
		{"swatch.hidpi", "hidpi"},
		{"swatch.label", "label"},
		{"swatch.png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, swatchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runSwatch(cmd *cobra.Command, args []string) error {
	output := viper.GetString("swatch.output")
	width := viper.GetInt("swatch.width")
	height := viper.GetInt("swatch.height")
	hidpi := viper.GetBool("swatch.hidpi")
	label := viper.GetBool("swatch.label")
	pngCompression := viper.GetString("swatch.png_compression")

	if logger == nil {
		initLogging()
	}

	if output == "" {
		return fmt.Errorf("--output is required")
	}

	raw := args[0]
	c, err := converter.ConvertText(converter.DetectKind(raw), raw, colormodel.Default())
	if err != nil {
		return fmt.Errorf("failed to convert %q: %w", raw, err)
	}

	opts := swatch.Options{Width: width, Height: height, Scale: 1, Label: label}
	if hidpi {
		opts.Scale = 2
	}
	if err := writePNG(output, swatch.Render(c, opts), pngCompression); err != nil {
		return err
	}

	logger.Info("Swatch written", "path", output, "color", c.String(), "hidpi", hidpi)
	return nil
}
