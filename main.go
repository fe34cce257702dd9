package main

import (
	"os"

	"github.com/lbryio/bisect/cli"
	"github.com/lbryio/bisect/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	args, err := cli.ParseArgs(os.Args)
	if err != nil {
		log.Fatalln(err)
	}

	if args.Debug {
		log.SetLevel(log.DebugLevel)
	}

	err = cli.Run(args, os.Stdout)

	if args.PrintMetrics {
		if dumpErr := metrics.Dump(os.Stderr, prometheus.DefaultGatherer); dumpErr != nil {
			log.Warnf("could not write metrics: %v", dumpErr)
		}
	}

	if err != nil {
		log.Fatalln(err)
	}
}
