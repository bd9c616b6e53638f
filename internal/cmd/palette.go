package cmd

import (
	"fmt"
	"image"
	"os"
	"sort"
	"strings"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/MeKo-Tech/colorsync/internal/palette"
	"github.com/MeKo-Tech/colorsync/internal/swatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Derive a palette from a base color",
	Long: `Derive related colors from a base color.

Without --scheme, a noise-driven walk around the hue wheel produces --count
colors that are reproducible for a given --seed. With --scheme, a classic
harmony (complementary, triadic, analogous, split, tetradic) is printed.`,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)

	paletteCmd.Flags().String("base", string(colormodel.DefaultHex), "Base color (hex, rgb(...) or hsl(...))")
	paletteCmd.Flags().IntP("count", "n", 5, "Number of colors for a generated palette")
	paletteCmd.Flags().Int64("seed", 1337, "Deterministic seed for palette noise")
	paletteCmd.Flags().String("scheme", "", "Harmony scheme instead of a generated palette")
	paletteCmd.Flags().StringP("output", "o", "", "Also write the palette as a PNG strip to this file")
	paletteCmd.Flags().Bool("hidpi", false, "Render the PNG strip at 2x")
	paletteCmd.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"palette.base", "base"},
		{"palette.count", "count"},
		{"palette.seed", "seed"},
		{"palette.scheme", "scheme"},
		{"palette.output", "output"},
		{"palette.hidpi", "hidpi"},
		{"palette.png_compression", "png-compression"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, paletteCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runPalette(cmd *cobra.Command, args []string) error {
	baseRaw := viper.GetString("palette.base")
	count := viper.GetInt("palette.count")
	seed := viper.GetInt64("palette.seed")
	scheme := viper.GetString("palette.scheme")
	output := viper.GetString("palette.output")
	hidpi := viper.GetBool("palette.hidpi")
	pngCompression := viper.GetString("palette.png_compression")

	if logger == nil {
		initLogging()
	}

	base, err := converter.ConvertText(converter.DetectKind(baseRaw), baseRaw, colormodel.Default())
	if err != nil {
		return fmt.Errorf("invalid base color %q: %w", baseRaw, err)
	}

	colors, err := buildPalette(base, count, seed, scheme)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range colors {
		css := c.CSS()
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", css.Hex, css.RGB, css.HSL); err != nil {
			return err
		}
	}

	if output == "" {
		return nil
	}

	opts := swatch.Options{Label: true, Scale: 1}
	if hidpi {
		opts.Scale = 2
	}
	if err := writePNG(output, swatch.Strip(colors, opts), pngCompression); err != nil {
		return err
	}
	logger.Info("Palette strip written", "path", output, "colors", len(colors))
	return nil
}

func buildPalette(base colormodel.Color, count int, seed int64, scheme string) ([]colormodel.Color, error) {
	if scheme == "" {
		return palette.Generate(base, count, palette.Options{Seed: seed})
	}

	colors, err := palette.Harmony(base, scheme)
	if err != nil {
		names := make([]string, 0, len(palette.Schemes))
		for name := range palette.Schemes {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
	}
	return colors, nil
}

func writePNG(path string, img image.Image, compression string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := swatch.Encode(f, img, compression); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
