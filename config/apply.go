package config

import (
	"fmt"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/topology"
)

// Apply builds a fresh topology.Graph from doc, drawing node loopback
// ports from ports. It stops at the first configuration error and
// returns without side effects on the caller; the whole document is one
// operation.
func Apply(doc *Document, ports topology.PortAllocator) (*topology.Graph, error) {
	g := topology.NewGraph(ports)

	for _, ns := range doc.Nodes {
		n, err := g.AddNode(ns.Name)
		if err != nil {
			return nil, fmt.Errorf("config: node %q: %w", ns.Name, err)
		}
		if ns.Loopback != "" {
			lo, err := addr.ParseIP(ns.Loopback)
			if err != nil {
				return nil, fmt.Errorf("config: node %q loopback: %w", ns.Name, err)
			}
			n.SetLoopback(lo)
		}
		for _, is := range ns.Interfaces {
			if _, err := g.AddInterface(ns.Name, is.Name); err != nil {
				return nil, fmt.Errorf("config: node %q interface %q: %w", ns.Name, is.Name, err)
			}
		}
	}

	for _, ls := range doc.Links {
		if _, err := g.AddLink(ls.A.Node, ls.A.Interface, ls.Z.Node, ls.Z.Interface, ls.Cost); err != nil {
			return nil, fmt.Errorf("config: link %s:%s - %s:%s: %w",
				ls.A.Node, ls.A.Interface, ls.Z.Node, ls.Z.Interface, err)
		}
	}

	for _, ns := range doc.Nodes {
		n, _ := g.GetNodeByName(ns.Name)
		for _, is := range ns.Interfaces {
			iface, _ := n.InterfaceByName(is.Name)
			if err := applyInterfaceState(iface, is); err != nil {
				return nil, fmt.Errorf("config: node %q interface %q: %w", ns.Name, is.Name, err)
			}
		}
	}

	for _, rs := range doc.Routes {
		n, ok := g.GetNodeByName(rs.Node)
		if !ok {
			return nil, fmt.Errorf("config: route on unknown node %q", rs.Node)
		}
		if _, ok := n.InterfaceByName(rs.Interface); !ok {
			return nil, fmt.Errorf("config: route on node %q via unknown interface %q", rs.Node, rs.Interface)
		}
		dest, err := addr.ParseIP(rs.Dest)
		if err != nil {
			return nil, fmt.Errorf("config: route dest: %w", err)
		}
		gw, err := addr.ParseIP(rs.Gateway)
		if err != nil {
			return nil, fmt.Errorf("config: route gateway: %w", err)
		}
		n.Routes.Add(dest, rs.Mask, gw, rs.Interface)
	}

	return g, nil
}

func applyInterfaceState(iface *topology.Interface, is InterfaceSpec) error {
	switch {
	case is.IP != "":
		ip, err := addr.ParseIP(is.IP)
		if err != nil {
			return err
		}
		iface.SetIP(ip, is.Mask)
		iface.Node().Routes.AddDirect(ip, is.Mask)
		return nil

	case is.L2Mode == "access":
		iface.SetL2Mode(topology.L2ModeAccess)
		if is.VLAN != 0 {
			return iface.SetVLAN(is.VLAN)
		}
		return nil

	case is.L2Mode == "trunk":
		iface.SetL2Mode(topology.L2ModeTrunk)
		for _, vid := range is.TrunkVLANs {
			if err := iface.AddTrunkVLAN(vid); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}
