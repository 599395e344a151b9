package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MoleSir/reda/pkg/circuit"
	"github.com/MoleSir/reda/pkg/netlist"
	"github.com/MoleSir/reda/pkg/unit"
	"github.com/MoleSir/reda/pkg/util"
)

var (
	spiceEmit   bool
	spiceFormat string
)

var spiceCmd = &cobra.Command{
	Use:   "spice <netlist>",
	Short: "Parse a SPICE netlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Debugf("parsing netlist %s", args[0])
		net, err := netlist.ParseFile(args[0])
		if err != nil {
			return err
		}
		log.Debugf("parsed %d components, %d sources, %d commands",
			len(net.Components), len(net.Sources), len(net.Simulations))

		if spiceEmit {
			fmt.Println(net.Spice())
			return nil
		}
		switch spiceFormat {
		case "yaml":
			out, err := yaml.Marshal(net)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		case "table":
			printNetlistTable(net)
			return nil
		default:
			return fmt.Errorf("unknown format %q", spiceFormat)
		}
	},
}

func init() {
	spiceCmd.Flags().BoolVar(&spiceEmit, "emit", false, "re-emit the parsed netlist as SPICE text")
	spiceCmd.Flags().StringVar(&spiceFormat, "format", "table", "output format: table or yaml")
	rootCmd.AddCommand(spiceCmd)
}

func printNetlistTable(net *circuit.Netlist) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Statement", "Value"})
	for _, s := range net.Subckts {
		table.Append([]string{"SUBCKT", fmt.Sprintf(".SUBCKT %s (%d elements)", s.Name, len(s.Components)+len(s.Instances)), ""})
	}
	for _, m := range net.Models {
		table.Append([]string{"MODEL", m.Spice(), ""})
	}
	for _, c := range net.Components {
		table.Append([]string{c.Type(), c.Spice(), componentValue(c)})
	}
	for _, s := range net.Sources {
		table.Append([]string{s.Value.Kind(), s.Spice(), ""})
	}
	for _, i := range net.Instances {
		table.Append([]string{"X", i.Spice(), ""})
	}
	for _, s := range net.Simulations {
		table.Append([]string{"SIM", s.Spice(), simValue(s)})
	}
	for _, m := range net.Measures {
		table.Append([]string{"MEAS", m.Spice(), ""})
	}
	table.Render()
}

// componentValue renders the element value rescaled to a readable prefix.
func componentValue(c circuit.Component) string {
	switch c := c.(type) {
	case circuit.Resistor:
		return util.FormatNumber(unit.Number(c.Resistance), "Ohm")
	case circuit.Capacitor:
		return util.FormatNumber(unit.Number(c.Capacitance), "F")
	case circuit.Inductor:
		return util.FormatNumber(unit.Number(c.Inductance), "H")
	}
	return ""
}

func simValue(s circuit.SimCommand) string {
	switch s := s.(type) {
	case circuit.AcCommand:
		return util.FormatFrequency(s.FStart.Float64()) + " .. " + util.FormatFrequency(s.FStop.Float64())
	case circuit.TranCommand:
		return util.FormatValueFactor(s.Stop.Float64(), "s")
	}
	return ""
}
