// toxpacket builds and opens Tox DHT packets from the command line.
//
// Usage:
//
//	toxpacket [global flags] keygen
//	toxpacket [global flags] seal-echo --peer KEY [--ping N] [--response]
//	toxpacket [global flags] open [HEX]
//
// Packets are read and written as hex. open reads from standard input when
// no argument is given and prints the decoded fields as YAML.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/opd-ai/toxpacket/codec"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the flags accepted before the subcommand.
type globals struct {
	configPath string
	secretKey  string
	cacheSize  int
	logLevel   string
	metrics    bool
}

func (g *globals) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&g.configPath, "config", "c", "", "path to a YAML config file")
	fs.StringVar(&g.secretKey, "secret-key", "", "hex secret key (overrides the config file)")
	fs.IntVar(&g.cacheSize, "cache-size", 0, "shared key cache size (overrides the config file)")
	fs.StringVar(&g.logLevel, "log-level", "", "log level (overrides the config file)")
	fs.BoolVar(&g.metrics, "metrics", false, "print codec counters to stderr when done")
}

// config loads the file and applies the flags the user set.
func (g *globals) config(fs *pflag.FlagSet) (Config, error) {
	cfg, err := LoadConfig(g.configPath)
	if err != nil {
		return cfg, err
	}
	if fs.Changed("secret-key") {
		cfg.SecretKey = g.secretKey
	}
	if fs.Changed("cache-size") {
		cfg.KeyCacheSize = g.cacheSize
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	return cfg, cfg.Validate()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var g globals
	fs := pflag.NewFlagSet("toxpacket", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	g.addFlags(fs)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		printUsage(stderr, fs)
		return errors.New("missing command")
	}

	cfg, err := g.config(fs)
	if err != nil {
		return err
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)
	logrus.SetOutput(stderr)

	reg := prometheus.NewRegistry()
	if err := codec.RegisterMetrics(reg); err != nil {
		return err
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "keygen":
		err = runKeygen(rest, stdout, stderr)
	case "seal-echo":
		err = runSealEcho(cfg, rest, stdout, stderr)
	case "open":
		err = runOpen(cfg, rest, stdin, stdout, stderr)
	default:
		printUsage(stderr, fs)
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err == nil && g.metrics {
		err = dumpMetrics(stderr, reg)
	}
	return err
}

// dumpMetrics writes one line per counter series.
func dumpMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: toxpacket [flags] <keygen|seal-echo|open> [command flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
