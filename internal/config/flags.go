package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the peer flags from args (without the program name).
//
// Flags:
//
//	-a, --address          HTTP API address in format [host]:[port]
//	    --request-timeout  inbound request timeout (e.g. "30s")
//	-d, --dsn              storage DSN (sqlite path, :memory:, redis://...)
//	    --max-value-size   per-key capacity in bytes
//	    --quota            total storage quota in bytes
//	    --inbox-size       advertised max packet size
//	    --companion-url    companion HTTP endpoint
//	    --adapter-timeout  outbound request timeout
//	    --nats-url         NATS server URL
//	    --nats-subject     NATS subject prefix
//	    --reconnect-delay  delay before a reconnect request
//	    --queue-size       event loop queue capacity
//	    --ui               start the terminal monitor
//	    --log-file         log file used while the monitor is running
//	    --await-initial-sync report syncing until the first session ends
//	-c, --config           JSON config file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	var serverAddress NetAddress

	fs := pflag.NewFlagSet("bucket-sync", pflag.ContinueOnError)
	fs.VarP(&serverAddress, "address", "a", "Net address host:port")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVarP(&cfg.Storage.DSN, "dsn", "d", "", "Storage DSN")
	fs.IntVar(&cfg.Storage.MaxValueSize, "max-value-size", 0, "Per-key capacity in bytes")
	fs.IntVar(&cfg.Storage.Quota, "quota", 0, "Total storage quota in bytes")
	fs.IntVar(&cfg.App.InboxSize, "inbox-size", 0, "Advertised max packet size")
	fs.StringVar(&cfg.Adapter.CompanionURL, "companion-url", "", "Companion HTTP endpoint")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "adapter-timeout", 0, "Outbound request timeout")
	fs.StringVar(&cfg.Adapter.NATSURL, "nats-url", "", "NATS server URL")
	fs.StringVar(&cfg.Adapter.NATSSubject, "nats-subject", "", "NATS subject prefix")
	fs.DurationVar(&cfg.Workers.ReconnectDelay, "reconnect-delay", 0, "Delay before a reconnect request")
	fs.IntVar(&cfg.Workers.QueueSize, "queue-size", 0, "Event loop queue capacity")
	fs.BoolVar(&cfg.UI.Enabled, "ui", false, "Start the terminal monitor")
	fs.StringVar(&cfg.UI.LogFile, "log-file", "", "Log file used while the monitor is running")
	fs.BoolVar(&cfg.UI.AwaitInitialSync, "await-initial-sync", false, "Report syncing until the first session ends")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "address"
}
