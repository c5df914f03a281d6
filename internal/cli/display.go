package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dailywall/pkg/display"
)

// displayCommand creates the display command that explains the canvas size
// a run would use.
func (c *CLI) displayCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Show the canvas size a run would use and where it comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSizeFlags(width, height); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			res := c.resolveDisplay(cmd.Context(), cfg, width, height)

			printKeyValue("Size", StyleNumber.Render(res.Size.String()))
			printKeyValue("Origin", string(res.Origin))
			if res.Origin == display.OriginFallback && res.Err != nil {
				printWarning("Display detection failed: %v", res.Err)
				printDetail("Set [display] width and height in the config to silence this")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "canvas width override")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height override")

	return cmd
}
