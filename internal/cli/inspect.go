package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaset/internal/colour"
	"github.com/jmylchreest/chromaset/internal/palette"
)

func newInspectCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <hex>...",
		Short: "Show colour-space values and the nearest anchor for colours",
		Long: `Inspect prints RGB, HSV and CIE LAB values for each colour, its hue family,
and the anchor colour whose hue is closest.

Examples:
  chromaset inspect '#1772B4' 0AA344`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			anchors, err := colour.DescribeAll(cfg.Anchors)
			if err != nil {
				return fmt.Errorf("invalid anchor: %w", err)
			}

			out := cmd.OutOrStdout()
			preview := isTerminal(out)

			headers := []string{"Hex", "RGB", "HSV", "LAB", "Family", "Anchor", "Hue dist"}
			if preview {
				headers = append([]string{""}, headers...)
			}
			t := NewTable(headers)
			t.SetAlign(len(headers)-1, AlignRight)

			for _, a := range args {
				h, err := colour.NormaliseHex(a)
				if err != nil {
					return err
				}
				info, err := colour.Describe(h)
				if err != nil {
					return err
				}
				row := inspectRow(info, anchors)
				if preview {
					row = append([]string{colour.ColourPreviewWithText(info.RGB, "Aa", 4)}, row...)
				}
				t.AddRow(row)
			}

			fmt.Fprint(out, t.Render())
			return nil
		},
	}
}

func inspectRow(info colour.Info, anchors []colour.Info) []string {
	anchor, dist := "-", "-"
	if i, d := palette.NearestAnchor(info.HSV.H, anchors); i >= 0 {
		anchor = string(anchors[i].Hex)
		dist = degrees(d)
	}
	return []string{
		string(info.Hex),
		info.RGB.Tuple(),
		fmt.Sprintf("%.1f°, %.2f, %.2f", info.HSV.H, info.HSV.S, info.HSV.V),
		fmt.Sprintf("%.2f, %.2f, %.2f", info.Lab.L, info.Lab.A, info.Lab.B),
		colour.HueName(info.HSV.H),
		anchor,
		dist,
	}
}
