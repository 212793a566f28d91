// Command simnet builds a topology from a YAML document and exposes an
// operator CLI over it: show topology, show node <name> arp|mac|rt,
// run node <name> resolve-arp|ping <ip>, and config route verbs. The
// command layer validates scalars with cobra's own flag/arg binding and
// then calls engine entry points or the node's table and interface
// methods (route add/remove, VLAN membership, ARP cache reads); it does no
// frame processing itself.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nettopo/simnet/config"
	"github.com/nettopo/simnet/engine"
	"github.com/nettopo/simnet/internal"
	"github.com/nettopo/simnet/l2"
	"github.com/nettopo/simnet/phys"
	"github.com/nettopo/simnet/topology"
)

// app holds CLI state shared across all commands: the live topology and
// its receiver, built once in PersistentPreRunE and read by every leaf
// command for the remainder of the process.
type app struct {
	topologyPath string
	verbose      bool

	graph    *topology.Graph
	receiver *phys.Receiver
	log      *slog.Logger
}

var a = &app{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "simnet",
		Short:         "multi-node TCP/IP data-plane simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return loadTopology()
		},
	}
	// With no subcommand, simnet drops into an interactive shell over
	// the same command tree, a read-eval loop against one long-lived
	// in-memory topology.
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	}
	return cmd
}

func init() {
	rootCmd = newRootCmd()
	rootCmd.PersistentFlags().StringVarP(&a.topologyPath, "topology", "t", "", "path to a topology YAML document (required)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(showCmd, runCmd, configCmd)
}

// loadTopology reads a.topologyPath, builds the graph, registers every
// node's loopback endpoint with a fresh Receiver, wires the L2/ARP/L3
// engine to it, and starts the single detached receiver worker. This
// one-time startup sequence runs before any command executes.
func loadTopology() error {
	if a.graph != nil {
		// Already built on an earlier command in this process (the
		// interactive shell re-enters PersistentPreRunE on every line).
		return nil
	}
	if a.topologyPath == "" {
		return errors.New("simnet: --topology is required")
	}
	doc, err := config.Load(a.topologyPath)
	if err != nil {
		return err
	}
	r, err := phys.NewReceiver(internal.Logger{Log: a.log})
	if err != nil {
		return fmt.Errorf("simnet: cannot start receiver: %w", err)
	}
	g, err := config.Apply(doc, phys.NewPortAllocator())
	if err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		if _, err := r.Register(n); err != nil {
			return fmt.Errorf("simnet: registering node %q: %w", n.Name(), err)
		}
	}
	engine.SetLogger(internal.Logger{Log: a.log})
	l2.AssertL2EgressMode = false
	engine.Wire(g, r.Send)
	g.MarkStarted()

	a.graph = g
	a.receiver = r
	return startReceiver(r)
}

// startReceiver launches the receiver worker under an errgroup so that a
// fatal receiver failure (e.g. epoll_wait erroring out) surfaces as a
// process exit rather than silently stalling every subsequent command.
func startReceiver(r *phys.Receiver) error {
	eg, ctx := errgroup.WithContext(context.Background())
	eg.Go(func() error {
		r.Start()
		return errors.New("simnet: receiver worker exited")
	})
	go func() {
		<-ctx.Done()
		if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	return nil
}

// runInteractive implements the read-eval loop: each line is tokenized
// and re-dispatched through the same cobra command tree, so `show`,
// `run`, and `config` behave identically whether invoked as a single
// process argument list or as one line of the shell.
func runInteractive() error {
	fmt.Fprintln(os.Stdout, "simnet: type a command (show|run|config) or 'exit'")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "simnet> ")
		if !scanner.Scan() {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		fields := strings.Fields(line)
		rootCmd.SetArgs(fields)
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// requireNode resolves name on the loaded topology or returns a
// single-line validation error.
func requireNode(name string) (*topology.Node, error) {
	n, ok := a.graph.GetNodeByName(name)
	if !ok {
		return nil, fmt.Errorf("simnet: no such node %q", name)
	}
	return n, nil
}
