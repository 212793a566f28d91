package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nettopo/simnet/addr"
	"github.com/nettopo/simnet/arpengine"
	"github.com/nettopo/simnet/ping"
	"github.com/nettopo/simnet/topology"
)

// arpRoundTripTimeout bounds how long `run node <name> resolve-arp` waits
// for the loopback-UDP request/reply round trip to land before reporting
// a miss. There is no ARP retry, so one short poll window is all a
// caller gets.
const arpRoundTripTimeout = 500 * time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "submit outbound traffic from a node",
}

var runNodeCmd = &cobra.Command{
	Use:   "node <name> [resolve-arp|ping] <ip>",
	Short: "resolve an ARP entry or send a ping from a node",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := requireNode(args[0])
		if err != nil {
			return err
		}
		ip, err := addr.ParseIP(args[2])
		if err != nil {
			return fmt.Errorf("simnet: %w", err)
		}
		switch args[1] {
		case "resolve-arp":
			return resolveARP(n, ip)
		case "ping":
			if err := ping.Send(n, ip, a.receiver.Send); err != nil {
				return err
			}
			fmt.Println("ping submitted")
			return nil
		default:
			return fmt.Errorf("simnet: unknown run target %q (want resolve-arp or ping)", args[1])
		}
	},
}

func init() {
	runCmd.AddCommand(runNodeCmd)
}

// resolveARP submits a broadcast ARP request from n toward ip and polls
// n's ARP cache for the reply, which arrives asynchronously on the
// shared receiver worker rather than synchronously under this call.
func resolveARP(n *topology.Node, ip addr.IP) error {
	egress, err := arpengine.ResolveEgress(n, ip)
	if err != nil {
		return err
	}
	reqFrame, reqSize, err := arpengine.BuildRequest(egress, ip)
	if err != nil {
		return err
	}
	a.receiver.Send(egress, reqFrame, reqSize)

	deadline := time.Now().Add(arpRoundTripTimeout)
	for {
		if e, ok := n.ARP.Lookup(ip); ok {
			fmt.Printf("%s resolved at %s via %s\n", ip.String(), e.MAC.String(), e.IfName)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("simnet: no ARP reply for %s", ip.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
