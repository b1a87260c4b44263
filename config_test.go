package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertof/go-beacon-radar/ble"
	"github.com/robertof/go-beacon-radar/display"
)

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := parseArgs(nil)
	require.NoError(t, err)

	assert.Zero(t, cfg.bleFlags())
	assert.Equal(t, config{
		Radio:      radioBackendHCI,
		Display:    displayBackendLog,
		Restart:    restartModeWarm,
		SerialBaud: display.DefaultBaudRate,
	}, cfg)
}

func TestParseArgs(t *testing.T) {
	cfg, err := parseArgs([]string{
		"-radio", "bluez",
		"-display", "serial",
		"-serial-port", "/dev/ttyACM0",
		"-restart", "exec",
		"-bind", "localhost:9103",
		"-bluetooth-device", "1",
		"-debug",
		"-report-duplicates",
	})
	require.NoError(t, err)

	assert.Equal(t, radioBackendBluez, cfg.Radio)
	assert.Equal(t, displayBackendSerial, cfg.Display)
	assert.Equal(t, "/dev/ttyACM0", cfg.SerialPort)
	assert.Equal(t, restartModeExec, cfg.Restart)
	assert.Equal(t, "localhost:9103", cfg.BindAddress)
	assert.Equal(t, 1, cfg.BluetoothDeviceId)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.ReportDuplicates)
	assert.Equal(t, ble.FlagReportDuplicates, cfg.bleFlags())
}

func TestParseArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown radio", []string{"-radio", "usb"}},
		{"unknown display", []string{"-display", "oled"}},
		{"unknown restart", []string{"-restart", "cold"}},
		{"serial without port", []string{"-display", "serial"}},
		{"discover over bluez", []string{"-discover", "-radio", "bluez"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			assert.Error(t, err)
		})
	}
}
