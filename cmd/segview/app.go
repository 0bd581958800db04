package main

import (
	"io"

	"github.com/urfave/cli/v2"
)

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "segview",
		Usage:     "Inspect snapshots of an append-only segment store",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path of a TOML config file",
				EnvVars: []string{"SEGVIEW_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "snapshot",
				Usage:   "location of the snapshot documents: a directory, s3://bucket/prefix or azblob://container/prefix",
				EnvVars: []string{"SEGVIEW_SNAPSHOT"},
			},
			&cli.StringFlag{
				Name:  "document",
				Usage: "snapshot document to open, defaults to the latest one",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Commands: []*cli.Command{{
			Name:   "documents",
			Usage:  "List the snapshot documents of the location",
			Action: withSession(listDocuments, false),
		}, {
			Name:   "tars",
			Usage:  "List tar files and their sizes",
			Action: withSession(listTars, true),
		}, {
			Name:  "segments",
			Usage: "List segments, optionally filtered",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "where",
					Usage: `filter expression, e.g. 'type == "DATA" && references > 10'`,
				},
			},
			Action: withSession(listSegments, true),
		}, {
			Name:      "dump",
			Usage:     "Hex dump a segment",
			ArgsUsage: "<segment-id>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "header",
					Usage: "include meta data, references and records",
				},
			},
			Action: withSession(dumpSegment, true),
		}, {
			Name:  "journal",
			Usage: "List journal entries, most recent first",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 10,
					Usage: "maximum number of entries to list",
				},
			},
			Action: withSession(listJournal, true),
		}, {
			Name:      "node",
			Usage:     "Print the node tree of a NODE record",
			ArgsUsage: "<segment-id> <record-number>",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "depth",
					Value: 3,
					Usage: "maximum depth to print",
				},
			},
			Action: withSession(printNode, true),
		}, {
			Name:      "record",
			Usage:     "Show the record of a record id",
			ArgsUsage: "<segment-id>:<offset>",
			Action:    withSession(showRecord, true),
		}, {
			Name:  "stats",
			Usage: "Print aggregate sizes and counts",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "metrics",
					Usage: "also print the process metrics",
				},
			},
			Action: withSession(printStats, true),
		}, {
			Name:   "check",
			Usage:  "Validate every segment",
			Action: withSession(checkSegments, true),
		}},
	}
}
