package cmd

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/nvkv/credstore/pkg/codec"
	"github.com/nvkv/credstore/pkg/store"
)

// openStore builds the store the configuration selects, honoring the
// --backend override.
func openStore(cmd *cobra.Command) (store.Store, error) {
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return store.New(cfg)
}

// parseBSSID converts a colon-separated hex hardware address into the
// fixed 6-byte form. An empty string yields the zero address.
func parseBSSID(s string) ([codec.BSSIDSize]byte, error) {
	var bssid [codec.BSSIDSize]byte
	if s == "" {
		return bssid, nil
	}
	hw, err := net.ParseMAC(s)
	if err != nil {
		return bssid, fmt.Errorf("invalid BSSID %q: %w", s, err)
	}
	if len(hw) != codec.BSSIDSize {
		return bssid, fmt.Errorf("invalid BSSID %q: want %d bytes", s, codec.BSSIDSize)
	}
	copy(bssid[:], hw)
	return bssid, nil
}

// formatBSSID renders a hardware address in colon-separated hex.
func formatBSSID(bssid [codec.BSSIDSize]byte) string {
	return net.HardwareAddr(bssid[:]).String()
}
