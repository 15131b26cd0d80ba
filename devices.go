package main

import (
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial/enumerator"
)

// Greaseweazle boards enumerate as USB CDC serial ports with this ID.
const (
	greaseweazleVID = "1209"
	greaseweazlePID = "4D69"
)

func isGreaseweazle(p *enumerator.PortDetails) bool {
	return p.IsUSB && strings.EqualFold(p.VID, greaseweazleVID) && strings.EqualFold(p.PID, greaseweazlePID)
}

// listPorts returns the USB serial ports on this machine.
func listPorts() ([]*enumerator.PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	return ports, nil
}

// findGreaseweazle returns the port of the first Greaseweazle found, or "".
func findGreaseweazle(ports []*enumerator.PortDetails) string {
	for _, p := range ports {
		if isGreaseweazle(p) {
			return p.Name
		}
	}
	return ""
}

func printPorts(w io.Writer, ports []*enumerator.PortDetails) {
	fmt.Fprintf(w, "  %-20s  %-9s  %-20s  %s\n", "Port", "VID:PID", "Serial", "Product")
	printed := false
	for _, p := range ports {
		if !p.IsUSB {
			continue
		}
		name := p.Name
		if isGreaseweazle(p) {
			name += " *"
		}
		serial := p.SerialNumber
		if serial == "" {
			serial = "-"
		}
		fmt.Fprintf(w, "  %-20s  %4s:%-4s  %-20s  %s\n", name, p.VID, p.PID, serial, p.Product)
		printed = true
	}
	if !printed {
		fmt.Fprintln(w, "  <none detected>")
	}
}
