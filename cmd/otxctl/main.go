// Command otxctl is a small demo harness that exercises a
// ClientContext/ServerContext pair end to end over the in-process
// transport, one subcommand per consensus operation, analogous in
// spirit to dcrlncli's one-subcommand-per-RPC shape.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli"
	"github.com/wigggles/otxconsensus/consensus"
	"github.com/wigggles/otxconsensus/internal/config"
	"github.com/wigggles/otxconsensus/internal/metrics"
	"github.com/wigggles/otxconsensus/internal/store"
	"github.com/wigggles/otxconsensus/internal/testharness"
)

// session is the single in-process notary/client pair this CLI drives
// commands against for the lifetime of one invocation. save/load
// persist the client's Context across invocations via internal/store.
var session = testharness.New("alice", "notary1", "notary1")

func main() {
	app := cli.NewApp()
	app.Name = "otxctl"
	app.Usage = "drive a notary/client consensus relationship for manual testing"
	app.Commands = []cli.Command{
		issueCommand,
		consumeCommand,
		statementCommand,
		harvestCommand,
		saveCommand,
		loadCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "otxctl: %v\n", err)
		os.Exit(1)
	}
}

func openStore() (*store.LevelDB, error) {
	top := config.DefaultConfig()
	notaryCfg, err := config.LoadNotaryConfig(top.NotaryConfigPath)
	if err != nil {
		return nil, err
	}
	return store.OpenLevelDB(notaryCfg.StorageRoot)
}

var saveCommand = cli.Command{
	Name:  "save",
	Usage: "persist the client's context to the storage root",
	Action: func(ctx *cli.Context) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		path := store.ContextPath(session.Client.LocalID(), session.Client.RemoteID())
		if err := db.Write(path, session.Client.Serialize()); err != nil {
			return err
		}
		metrics.ObserveRegistry(session.Client.RemoteID(), len(session.Client.Available()), 0)
		fmt.Printf("saved context to %s\n", path)
		return nil
	},
}

var loadCommand = cli.Command{
	Name:  "load",
	Usage: "reload the client's context from the storage root",
	Action: func(ctx *cli.Context) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		path := store.ContextPath(session.Client.LocalID(), session.Client.RemoteID())
		data, err := db.Read(path)
		if err != nil {
			return err
		}
		parsed, err := consensus.ParseContext(data)
		if err != nil {
			return err
		}
		session.Client = parsed
		fmt.Printf("loaded context from %s\n", path)
		return nil
	},
}

var issueCommand = cli.Command{
	Name:      "issue",
	Usage:     "issue a fresh transaction number to the client",
	ArgsUsage: "number",
	Action: func(ctx *cli.Context) error {
		n, err := parseNumber(ctx, 0)
		if err != nil {
			return err
		}
		if err := session.IssueTo(n); err != nil {
			return err
		}
		fmt.Printf("issued %d\n", n)
		return nil
	},
}

var consumeCommand = cli.Command{
	Name:      "consume",
	Usage:     "consume an available number on the client side",
	ArgsUsage: "number",
	Action: func(ctx *cli.Context) error {
		n, err := parseNumber(ctx, 0)
		if err != nil {
			return err
		}
		if err := session.Client.Consume(n); err != nil {
			return err
		}
		fmt.Printf("consumed %d\n", n)
		return nil
	},
}

var statementCommand = cli.Command{
	Name:  "statement",
	Usage: "print the client's current transaction statement",
	Action: func(ctx *cli.Context) error {
		stmt := session.Client.BuildStatement()
		fmt.Printf("notary=%s issued=%v\n", stmt.Notary(), stmt.Issued().Slice())
		return nil
	},
}

var harvestCommand = cli.Command{
	Name:      "recover",
	Usage:     "recover a number back to available (simulates a failed send)",
	ArgsUsage: "number",
	Action: func(ctx *cli.Context) error {
		n, err := parseNumber(ctx, 0)
		if err != nil {
			return err
		}
		if err := session.Client.Recover(n); err != nil {
			return err
		}
		fmt.Printf("recovered %d\n", n)
		return nil
	},
}

func parseNumber(ctx *cli.Context, idx int) (consensus.TransactionNumber, error) {
	args := ctx.Args()
	if len(args) <= idx {
		return 0, fmt.Errorf("missing transaction number argument")
	}
	n, err := strconv.ParseUint(args.Get(idx), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction number: %w", err)
	}
	return consensus.TransactionNumber(n), nil
}
