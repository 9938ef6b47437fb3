// Command portfolioctl computes allocations and performance from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&allocateCmd{}, "")
	commander.Register(&performanceCmd{}, "")
	commander.Register(&importCmd{}, "")

	verbose := flag.Bool("v", false, "log debug output to stderr")
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	os.Exit(int(commander.Execute(context.Background())))
}
