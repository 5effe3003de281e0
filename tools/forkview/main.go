// forkview replays a JSON-lines dump of heaviest fork records against a
// stake table and prints the resulting per-fork stake distribution. It is
// an operator debugging aid for stalled restart attempts.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/wenlabs/wenrestart/consensus-types/primitives"
	"github.com/wenlabs/wenrestart/restart/heaviestfork"
	"github.com/wenlabs/wenrestart/stakes"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func main() {
	var recordsPath string
	var stakesPath string
	var myPubkeyStr string
	var myHashStr string
	var mySlot uint64
	var shredVersion uint

	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	app := cli.App{}
	app.Name = "forkview"
	app.Usage = "Replay a heaviest fork record dump and show the stake distribution"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "records",
			Usage:       "Path to a JSON-lines dump of heaviest fork records",
			Required:    true,
			Destination: &recordsPath,
		},
		&cli.StringFlag{
			Name:        "stakes",
			Usage:       "Path to a JSON stake table, hex pubkey to stake",
			Required:    true,
			Destination: &stakesPath,
		},
		&cli.StringFlag{
			Name:        "my-pubkey",
			Usage:       "Hex pubkey of the local node",
			Required:    true,
			Destination: &myPubkeyStr,
		},
		&cli.StringFlag{
			Name:        "my-hash",
			Usage:       "Hex hash of the local node's heaviest fork",
			Required:    true,
			Destination: &myHashStr,
		},
		&cli.Uint64Flag{
			Name:        "my-slot",
			Usage:       "Slot of the local node's heaviest fork",
			Required:    true,
			Destination: &mySlot,
		},
		&cli.UintFlag{
			Name:        "shred-version",
			Usage:       "Shred version of the restarting cluster",
			Required:    true,
			Destination: &shredVersion,
		},
	}
	app.Action = func(c *cli.Context) error {
		return view(recordsPath, stakesPath, myPubkeyStr, myHashStr, mySlot, uint16(shredVersion))
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func view(recordsPath, stakesPath, myPubkeyStr, myHashStr string, mySlot uint64, shredVersion uint16) error {
	snapshot, err := loadStakes(stakesPath)
	if err != nil {
		return err
	}
	myPubkey, err := primitives.PubkeyFromString(myPubkeyStr)
	if err != nil {
		return errors.Wrap(err, "could not parse my-pubkey")
	}
	myHash, err := primitives.HashFromString(myHashStr)
	if err != nil {
		return errors.Wrap(err, "could not parse my-hash")
	}

	agg := heaviestfork.New(shredVersion, snapshot, primitives.Slot(mySlot), myHash, myPubkey)
	ctx := context.Background()

	f, err := os.Open(recordsPath)
	if err != nil {
		return errors.Wrap(err, "could not open records dump")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("Could not close records dump")
		}
	}()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		record := &heaviestfork.Record{}
		if err := json.Unmarshal(line, record); err != nil {
			return errors.Wrapf(err, "could not unmarshal record %d", count)
		}
		result, err := agg.AggregateFromRecord(ctx, record)
		if err != nil {
			return errors.Wrapf(err, "could not aggregate record %d", count)
		}
		log.WithFields(log.Fields{
			"from":   record.From,
			"slot":   record.Slot,
			"status": result.Status.String(),
		}).Info("Record aggregated")
		count++
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "could not read records dump")
	}

	agg.LogBlockStakeMap()
	log.WithFields(log.Fields{
		"records":          count,
		"totalActiveStake": agg.TotalActiveStake(),
		"totalStake":       snapshot.TotalStake(),
	}).Info("Replay complete")
	return nil
}

func loadStakes(path string) (*stakes.Snapshot, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read stake table")
	}
	table := make(map[string]uint64)
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal stake table")
	}
	byNode := make(map[primitives.Pubkey]uint64, len(table))
	for key, stake := range table {
		pubkey, err := primitives.PubkeyFromString(key)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pubkey %q in stake table", key)
		}
		byNode[pubkey] = stake
	}
	return stakes.NewSnapshot(byNode), nil
}
