package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nettopo/simnet/topology"
)

// showCmd implements "show topology" and "show node <name> arp|mac|rt".
// The dump format is CLI-only territory: the engine packages expose
// snapshots and the tabwriter tables live here.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "display topology and per-node state",
}

var showTopologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "list every node, its interfaces, and their peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NODE\tINTERFACE\tMODE\tADDRESS\tPEER")
		for _, n := range a.graph.Nodes() {
			for _, i := range n.Interfaces() {
				fmt.Fprintln(tw, n.Name()+"\t"+i.Name()+"\t"+modeString(i)+"\t"+addrString(i)+"\t"+peerString(i))
			}
		}
		return tw.Flush()
	},
}

var showNodeCmd = &cobra.Command{
	Use:   "node <name> [arp|mac|rt]",
	Short: "dump one node's ARP cache, MAC table, or routing table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := requireNode(args[0])
		if err != nil {
			return err
		}
		switch args[1] {
		case "arp":
			return showARP(n)
		case "mac":
			return showMAC(n)
		case "rt":
			return showRT(n)
		default:
			return fmt.Errorf("simnet: unknown show target %q (want arp, mac, or rt)", args[1])
		}
	},
}

func init() {
	showCmd.AddCommand(showTopologyCmd, showNodeCmd)
}

func showARP(n *topology.Node) error {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IP\tMAC\tINTERFACE")
	for _, e := range n.ARP.Entries() {
		fmt.Fprintln(tw, e.IP.String()+"\t"+e.MAC.String()+"\t"+e.IfName)
	}
	return tw.Flush()
}

func showMAC(n *topology.Node) error {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MAC\tINTERFACE")
	for _, e := range n.MAC.Entries() {
		fmt.Fprintln(tw, e.MAC.String()+"\t"+e.IfName)
	}
	return tw.Flush()
}

func showRT(n *topology.Node) error {
	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DEST\tMASK\tGATEWAY\tOIF\tDIRECT")
	for _, r := range n.Routes.Entries() {
		gw := "-"
		if !r.IsDirect {
			gw = r.Gateway.String()
		}
		oif := r.IfName
		if oif == "" {
			oif = "-"
		}
		fmt.Fprintf(tw, "%s\t/%d\t%s\t%s\t%v\n", r.Dest.String(), r.Mask, gw, oif, r.IsDirect)
	}
	return tw.Flush()
}

func modeString(i *topology.Interface) string {
	if i.IsL3Mode() {
		return "l3"
	}
	return i.L2Mode().String()
}

func addrString(i *topology.Interface) string {
	if ip, mask, ok := i.IP(); ok {
		return fmt.Sprintf("%s/%d", ip.String(), mask)
	}
	if vlans := i.VLANs(); len(vlans) > 0 {
		return fmt.Sprintf("vlan %v", vlans)
	}
	return "-"
}

func peerString(i *topology.Interface) string {
	peer := i.PeerInterface()
	if peer == nil {
		return "-"
	}
	return peer.String()
}
