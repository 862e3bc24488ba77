package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// GetTerminalID reads the physical MAC address of the machine and hashes
// it into a clean, stable POS terminal identifier like "BTQ-A1B2C3D4".
// Sales support can match a terminal to a counter without exposing the
// raw hardware address.
func GetTerminalID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "UNKNOWN-TERMINAL"
	}

	var macAddress string
	for _, i := range interfaces {
		// First active physical network interface wins
		if i.Flags&net.FlagUp != 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}

	if macAddress == "" {
		return "UNKNOWN-TERMINAL"
	}

	hash := sha256.Sum256([]byte(macAddress + "BOUTIQUE-POS-SALT"))
	hashString := hex.EncodeToString(hash[:])

	return "BTQ-" + strings.ToUpper(hashString[:8])
}
