package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MoleSir/reda/pkg/lef"
)

var lefFormat string

var lefCmd = &cobra.Command{
	Use:   "lef <file>",
	Short: "Parse a LEF technology library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Debugf("parsing technology library %s", args[0])
		lib, err := lef.ParseFile(args[0])
		if err != nil {
			return err
		}
		log.Debugf("parsed version %g, %d layers", lib.Version, len(lib.Layers))

		switch lefFormat {
		case "yaml":
			out, err := yaml.Marshal(lib)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		case "table":
			printLayerTable(lib)
			return nil
		default:
			return fmt.Errorf("unknown format %q", lefFormat)
		}
	},
}

func init() {
	lefCmd.Flags().StringVar(&lefFormat, "format", "table", "output format: table or yaml")
	rootCmd.AddCommand(lefCmd)
}

func printLayerTable(lib *lef.TechLibrary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Layer", "Type", "Detail"})
	for _, l := range lib.Layers {
		var detail string
		switch l := l.(type) {
		case *lef.CutLayer:
			detail = fmt.Sprintf("%d spacing, %d enclosure rules", len(l.Spacing), len(l.Enclosures))
		case *lef.RoutingLayer:
			detail = fmt.Sprintf("%s pitch %g width %g", l.Direction, l.Pitch.X, l.Width)
		case *lef.ImplantLayer:
			detail = fmt.Sprintf("%d spacing rules", len(l.Spacings))
		case *lef.SpecialLayer:
			detail = fmt.Sprintf("%d properties", len(l.Properties))
		}
		table.Append([]string{l.LayerName(), l.LayerType(), detail})
	}
	table.Render()
}
