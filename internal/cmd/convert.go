package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	"github.com/MeKo-Tech/colorsync/internal/converter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert [kind] <value>",
	Short: "Convert a color to HEX, RGB and HSL",
	Long: `Convert a single color and print all three representations.

The kind (hex, rgb or hsl) is detected from the value when omitted:
  colorsync convert '#1976d2'
  colorsync convert rgb '25, 118, 210'
  colorsync convert 'hsla(210, 79%, 46%, 0.5)'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Bool("json", false, "Print the result as JSON")

	if err := viper.BindPFlag("convert.json", convertCmd.Flags().Lookup("json")); err != nil {
		panic(fmt.Sprintf("failed to bind flag json: %v", err))
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	kind, value, err := parseConvertArgs(args)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer closeHistory(store)

	cfg := converter.Config{}
	if store != nil {
		cfg.Recorder = store
	}
	conv, err := converter.New(cfg, logger)
	if err != nil {
		return err
	}

	c, err := conv.ApplyText(kind, value)
	if err != nil {
		return fmt.Errorf("failed to convert %q: %w", value, err)
	}

	return writeColor(cmd.OutOrStdout(), c, viper.GetBool("convert.json"))
}

// parseConvertArgs accepts either <value> or <kind> <value>.
func parseConvertArgs(args []string) (converter.Kind, string, error) {
	switch len(args) {
	case 1:
		return converter.DetectKind(args[0]), args[0], nil
	case 2:
		kind, err := converter.ParseKind(args[0])
		if err != nil {
			return 0, "", err
		}
		return kind, args[1], nil
	default:
		return 0, "", fmt.Errorf("expected [kind] <value>, got %d arguments", len(args))
	}
}

func writeColor(w io.Writer, c colormodel.Color, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	css := c.CSS()
	_, err := fmt.Fprintf(w, "hex  %s\nrgb  %s\nhsl  %s\n", css.Hex, css.RGB, css.HSL)
	return err
}
