// Command concordcat opens a Concord 4 automation module link and either
// logs the state changes the client publishes (panel identity, zone and
// partition updates) as they arrive, or issues one command and exits.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/concord4/concord4"
	"github.com/concord4/concord4/config"
	"github.com/concord4/concord4/proto"
)

var (
	flagConfig = flag.StringP("config", "c", "",
		"path to a YAML config file; flags below override its values")
	flagDevice = flag.StringP("device", "d", "",
		"serial device the automation module is attached to")
	flagLogLevel = flag.String("log-level", "",
		"log level: debug, info, warn or error")
	flagSend = flag.String("send", "",
		"send one command and exit: disarm, arm-stay, arm-away, refresh")
	flagCode = flag.String("code", "",
		"4-digit user code for --send disarm/arm-stay/arm-away")
	flagPartition = flag.Uint8("partition", 1,
		"target partition for --send disarm/arm-stay/arm-away")
)

func parseCode(s string) ([4]proto.Keypress, error) {
	var code [4]proto.Keypress
	if len(s) != 4 {
		return code, fmt.Errorf("--code must be exactly 4 digits")
	}
	for i, r := range s {
		if r < '0' || r > '9' {
			return code, fmt.Errorf("--code must be numeric, got %q", s)
		}
		code[i] = proto.Keypress(r - '0')
	}
	return code, nil
}

func main() {
	flag.Parse()

	cfg, err := config.LoadFile(config.Default(), *flagConfig)
	if err != nil {
		fatal("load config: %v", err)
	}
	if *flagDevice != "" {
		cfg.Device = *flagDevice
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           mustLevel(cfg.LogLevel),
		ReportTimestamp: true,
	})

	client, err := concord4.Open(cfg.Device, concord4.Options{Logger: logger})
	if err != nil {
		fatal("open %s: %v", cfg.Device, err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		logger.Info("signal received, shutting down")
		cancel()
	}()

	if *flagSend != "" {
		runOneShot(ctx, client, logger, *flagSend)
		return
	}

	watch(ctx, client, logger)
}

func runOneShot(ctx context.Context, client *concord4.Client, logger *log.Logger, cmd string) {
	var err error
	switch cmd {
	case "disarm", "arm-stay", "arm-away":
		code, codeErr := parseCode(*flagCode)
		if codeErr != nil {
			fatal("%v", codeErr)
		}
		if cmd == "disarm" {
			err = client.Disarm(ctx, proto.DisarmOptions{Code: code, Partition: *flagPartition})
		} else {
			mode := proto.ArmStay
			if cmd == "arm-away" {
				mode = proto.ArmAway
			}
			err = client.Arm(ctx, proto.ArmOptions{Mode: mode, Code: code, Partition: *flagPartition})
		}
	case "refresh":
		err = client.Refresh(ctx, proto.ListAllData)
	default:
		fatal("unknown --send value %q", cmd)
	}
	if err != nil {
		fatal("send %s: %v", cmd, err)
	}
	logger.Info("command sent", "command", cmd)
}

func watch(ctx context.Context, client *concord4.Client, logger *log.Logger) {
	updates, cancel := client.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case u := <-updates:
			switch {
			case u.Zone != nil:
				logger.Info("zone update", "id", u.Zone.ID(), "status", u.Zone.ZoneStatus)
			case u.Partition != nil:
				logger.Info("partition update", "number", u.Partition.PartitionNumber, "arming", u.Partition.ArmingLevel)
			case u.Panel != nil:
				logger.Info("panel identified", "type", u.Panel.PanelType)
			}
		}
	}
}

func mustLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "concordcat: "+format+"\n", args...)
	os.Exit(1)
}
