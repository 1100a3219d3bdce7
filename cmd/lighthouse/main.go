package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/william251082/lighthouse/audit"
	"github.com/william251082/lighthouse/config"

	_ "embed"
)

var (
	//go:embed doc.go
	doc string

	debugFlag = flag.Bool("debug", false, "enable debug output")
	helpFlag  = flag.Bool("help", false, "show help")

	harFlag    = flag.String("har", "", "path to the HAR network log to join coverage against (required)")
	configFlag = flag.String("config", "", "path to a YAML config file; explicit flags override its values")

	thresholdFlag = flag.Uint64("threshold", audit.DefaultIgnoreThreshold,
		"drop resources whose potential savings in bytes are at or below this value")
	jsonFlag = flag.Bool("json", false, "output JSON records")
)

func main() {
	flag.Parse()
	if len(flag.Args()) == 0 || *helpFlag {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	cfg := config.Default()
	if *configFlag != "" {
		var err error
		cfg, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			cancel()
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "har":
			cfg.Audit.HARPath = *harFlag
		case "threshold":
			cfg.Audit.IgnoreThreshold = *thresholdFlag
		case "json":
			cfg.Output.JSON = *jsonFlag
		case "debug":
			cfg.Output.Debug = *debugFlag
		}
	})

	runner := audit.New(os.Stdout, os.Stderr, flag.Args())
	runner.HARPath = cfg.Audit.HARPath
	runner.IgnoreThreshold = cfg.Audit.IgnoreThreshold
	runner.JSONFlag = cfg.Output.JSON
	runner.DebugFlag = cfg.Output.Debug

	err := runner.Run(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		exitCode := 1
		cancel()
		os.Exit(exitCode)
	}
}

func usage() {
	// Extract the content of the /* ... */ comment in doc.go.
	_, after, _ := strings.Cut(doc, "/*\n")
	doc, _, _ := strings.Cut(after, "*/")
	_, _ = os.Stderr.WriteString(doc + `
Flags:

`)
	flag.PrintDefaults()
}
