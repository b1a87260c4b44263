package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/robertof/go-beacon-radar/ble"
	"github.com/robertof/go-beacon-radar/display"
)

type radioBackend string

const (
	radioBackendHCI   radioBackend = "hci"
	radioBackendBluez radioBackend = "bluez"
)

func (r *radioBackend) String() string {
	return string(*r)
}

func (r *radioBackend) Set(v string) error {
	switch radioBackend(v) {
	case radioBackendHCI, radioBackendBluez:
		*r = radioBackend(v)
		return nil
	default:
		return fmt.Errorf("unknown radio backend %q", v)
	}
}

type displayBackend string

const (
	displayBackendTerminal displayBackend = "terminal"
	displayBackendSerial   displayBackend = "serial"
	displayBackendLog      displayBackend = "log"
)

func (d *displayBackend) String() string {
	return string(*d)
}

func (d *displayBackend) Set(v string) error {
	switch displayBackend(v) {
	case displayBackendTerminal, displayBackendSerial, displayBackendLog:
		*d = displayBackend(v)
		return nil
	default:
		return fmt.Errorf("unknown display %q", v)
	}
}

type restartMode string

const (
	restartModeWarm restartMode = "warm"
	restartModeExec restartMode = "exec"
)

func (m *restartMode) String() string {
	return string(*m)
}

func (m *restartMode) Set(v string) error {
	switch restartMode(v) {
	case restartModeWarm, restartModeExec:
		*m = restartMode(v)
		return nil
	default:
		return fmt.Errorf("unknown restart mode %q", v)
	}
}

type config struct {
	Debug, Trace      bool
	BindAddress       string
	DiscoverDevices   bool
	BluetoothDeviceId int
	Radio             radioBackend
	Display           displayBackend
	SerialPort        string
	SerialBaud        int
	Restart           restartMode
	ReportDuplicates  bool
}

func (cfg config) bleFlags() (flags ble.Flags) {
	if cfg.ReportDuplicates {
		flags |= ble.FlagReportDuplicates
	}

	return flags
}

func newFlagSet(cfg *config) *flag.FlagSet {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	cfg.Radio = radioBackendHCI
	cfg.Display = displayBackendLog
	cfg.Restart = restartModeWarm

	fs.StringVar(&cfg.BindAddress, "bind", "", "Where the metrics endpoint binds to (disabled if empty)")
	fs.IntVar(&cfg.BluetoothDeviceId, "bluetooth-device", 0, "Bluetooth (HCI) device ID")
	fs.Var(&cfg.Radio, "radio", "Bluetooth stack (one of 'hci' or 'bluez')")
	fs.Var(&cfg.Display, "display", "LED grid output (one of 'terminal', 'serial' or 'log').\n"+
		"Logs keep going to stderr with 'terminal': redirect them")
	fs.StringVar(&cfg.SerialPort, "serial-port", "", "Serial port of the LED panel, required with -display=serial")
	fs.IntVar(&cfg.SerialBaud, "serial-baud", display.DefaultBaudRate, "Baud rate of the LED panel")
	fs.Var(&cfg.Restart, "restart", "How a cycle restarts (one of 'warm' or 'exec')")
	fs.BoolVar(&cfg.ReportDuplicates, "report-duplicates", false,
		"Have the HCI controller report every advertisement, not just the first per device.\n"+
			"Each repeat of a beacon then takes another slot")
	fs.BoolVar(&cfg.DiscoverDevices, "discover", false, "Discover nearby BLE devices and quit")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logs")
	fs.BoolVar(&cfg.Trace, "trace", false, "Enable trace logs")

	return fs
}

func (cfg config) validate() error {
	if cfg.Display == displayBackendSerial && cfg.SerialPort == "" {
		return fmt.Errorf("-serial-port is required with -display=%s", displayBackendSerial)
	}

	if cfg.DiscoverDevices && cfg.Radio != radioBackendHCI {
		return fmt.Errorf("-discover is only supported with -radio=%s", radioBackendHCI)
	}

	return nil
}

func parseArgs(args []string) (cfg config, err error) {
	fs := newFlagSet(&cfg)
	fs.Init(fs.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err = fs.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, cfg.validate()
}

func ParseArgs() config {
	var cfg config

	fs := newFlagSet(&cfg)
	fs.Parse(os.Args[1:])

	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fs.Usage()
		os.Exit(1)
	}

	return cfg
}
