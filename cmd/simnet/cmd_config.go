package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/topology"
)

// configCmd exposes route add/remove as two leaf verbs, `route` and
// `no-route`, since cobra has no native "optional leading token" grammar
// for a `config [no] ...` form, plus `config vlan <node> <if>
// access|trunk <vid> [remove]` for interface VLAN membership (remove
// applies to trunk membership only).
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "add or remove routing and VLAN configuration on a node",
}

var configRouteCmd = &cobra.Command{
	Use:   "route <node> <dest> <mask> <gw-ip> <oif>",
	Short: "add a gateway route on a node",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyRoute(args, false)
	},
}

var configNoRouteCmd = &cobra.Command{
	Use:   "no-route <node> <dest> <mask> <gw-ip> <oif>",
	Short: "remove a gateway route from a node",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyRoute(args, true)
	},
}

var configVLANCmd = &cobra.Command{
	Use:   "vlan <node> <if> access|trunk <vid> [remove]",
	Short: "set an interface's VLAN membership",
	Args:  cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyVLAN(args)
	},
}

func init() {
	configCmd.AddCommand(configRouteCmd, configNoRouteCmd, configVLANCmd)
}

// applyRoute parses <node> <dest> <mask> <gw-ip> <oif> and adds or
// removes the route.
func applyRoute(args []string, remove bool) error {
	n, err := requireNode(args[0])
	if err != nil {
		return err
	}
	dest, err := addr.ParseIP(args[1])
	if err != nil {
		return fmt.Errorf("simnet: route dest: %w", err)
	}
	mask64, err := strconv.ParseUint(args[2], 10, 8)
	if err != nil || mask64 > 32 {
		return fmt.Errorf("simnet: invalid mask %q", args[2])
	}
	mask := uint8(mask64)

	if remove {
		n.Routes.Delete(dest, mask)
		return nil
	}
	gw, err := addr.ParseIP(args[3])
	if err != nil {
		return fmt.Errorf("simnet: route gateway: %w", err)
	}
	oif := args[4]
	if _, ok := n.InterfaceByName(oif); !ok {
		return fmt.Errorf("simnet: node %q has no interface %q", n.Name(), oif)
	}
	n.Routes.Add(dest, mask, gw, oif)
	return nil
}

// applyVLAN parses <node> <if> access|trunk <vid> [remove] and mutates
// the named interface's VLAN membership. The remove token is honoured for
// trunk only; in access mode the VLAN is always set to vid.
func applyVLAN(args []string) error {
	n, err := requireNode(args[0])
	if err != nil {
		return err
	}
	iface, ok := n.InterfaceByName(args[1])
	if !ok {
		return fmt.Errorf("simnet: node %q has no interface %q", n.Name(), args[1])
	}
	vid64, err := strconv.ParseUint(args[3], 10, 16)
	if err != nil {
		return fmt.Errorf("simnet: invalid VLAN id %q", args[3])
	}
	vid := uint16(vid64)

	switch args[2] {
	case "access":
		if iface.L2Mode() != topology.L2ModeAccess {
			iface.SetL2Mode(topology.L2ModeAccess)
		}
		return iface.SetVLAN(vid)
	case "trunk":
		if iface.L2Mode() != topology.L2ModeTrunk {
			iface.SetL2Mode(topology.L2ModeTrunk)
		}
		if len(args) == 5 && args[4] == "remove" {
			return iface.RemoveTrunkVLAN(vid)
		}
		return iface.AddTrunkVLAN(vid)
	default:
		return fmt.Errorf("simnet: unknown interface mode %q (want access or trunk)", args[2])
	}
}
