package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/toxpacket"
	"github.com/opd-ai/toxpacket/codec"
	"github.com/opd-ai/toxpacket/crypto"
	"github.com/opd-ai/toxpacket/limits"
	"github.com/opd-ai/toxpacket/packet"
)

func newEndpoint(cfg Config) (*toxpacket.Endpoint, error) {
	opts, err := cfg.endpointOptions()
	if err != nil {
		return nil, err
	}
	if opts.SecretKey == nil {
		logrus.WithField("function", "newEndpoint").Warn("No secret key configured, using a throwaway identity")
	}
	return toxpacket.NewEndpoint(opts)
}

func runKeygen(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("keygen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	defer crypto.WipeKeyPair(kp)

	return writeYAML(stdout, struct {
		PublicKey string `yaml:"public_key"`
		SecretKey string `yaml:"secret_key"`
	}{
		PublicKey: kp.Public.String(),
		SecretKey: strings.ToUpper(hex.EncodeToString(kp.Secret[:])),
	})
}

func runSealEcho(cfg Config, args []string, stdout, stderr io.Writer) error {
	var peerHex string
	var pingID uint64
	var response bool
	fs := pflag.NewFlagSet("seal-echo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&peerHex, "peer", "", "hex public key of the recipient")
	fs.Uint64Var(&pingID, "ping", 0, "ping id to carry")
	fs.BoolVar(&response, "response", false, "build an echo response instead of a request")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if peerHex == "" {
		return fmt.Errorf("seal-echo: --peer is required")
	}

	peer, err := crypto.ParsePublicKey(peerHex)
	if err != nil {
		return fmt.Errorf("seal-echo: --peer: %w", err)
	}
	ep, err := newEndpoint(cfg)
	if err != nil {
		return err
	}

	var data []byte
	if response {
		data, err = ep.SealEchoResponse(peer, pingID)
	} else {
		data, err = ep.SealEchoRequest(peer, pingID)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(data))
	return err
}

func runOpen(cfg Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("open", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var input string
	switch fs.NArg() {
	case 0:
		raw, err := io.ReadAll(io.LimitReader(stdin, 2*limits.MaxUDPPacket+2))
		if err != nil {
			return fmt.Errorf("open: reading input: %w", err)
		}
		input = string(raw)
	case 1:
		input = fs.Arg(0)
	default:
		return fmt.Errorf("open: expected one packet, got %d arguments", fs.NArg())
	}

	data, err := hex.DecodeString(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("open: packet is not hex: %w", err)
	}

	ep, err := newEndpoint(cfg)
	if err != nil {
		return err
	}

	fields := packet.Inspect(data, ep.Keys())
	if !fields.Ok() {
		return writeYAML(stdout, struct {
			Status string `yaml:"status"`
			Error  string `yaml:"error"`
		}{fields.Code().String(), fields.Err().Error()})
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content, scalar("status"), scalar("ok"))
	doc.Content = append(doc.Content, scalar("packet"), describedNode(fields.Value()))
	return writeYAML(stdout, doc)
}

// describedNode renders described values as an ordered YAML mapping.
func describedNode(values []codec.NamedValue) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range values {
		m.Content = append(m.Content, scalar(v.Name), valueNode(v.Value))
	}
	return m
}

func valueNode(v interface{}) *yaml.Node {
	switch x := v.(type) {
	case []codec.NamedValue:
		return describedNode(x)
	case [][]codec.NamedValue:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, row := range x {
			seq.Content = append(seq.Content, describedNode(row))
		}
		return seq
	case uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(x)}
	default:
		return scalar(fmt.Sprint(x))
	}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
