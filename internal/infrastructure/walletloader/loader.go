package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"octav_mcp/internal/app/port"
	"octav_mcp/internal/app/validation"
)

// AddressFileLoader reads wallet addresses from a text file, one per line.
// Blank lines and lines starting with "#" are ignored.
type AddressFileLoader struct {
	filePath string
	logger   port.Logger
}

// NewAddressFileLoader creates a new AddressFileLoader.
func NewAddressFileLoader(filePath string, logger port.Logger) *AddressFileLoader {
	if logger == nil {
		logger = port.NopLogger{}
	}
	return &AddressFileLoader{
		filePath: filePath,
		logger:   logger,
	}
}

// LoadAddresses returns the valid addresses in file order, without duplicates.
// Malformed lines are logged and skipped.
func (l *AddressFileLoader) LoadAddresses() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open address file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var addresses []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !validation.IsValidAddress(line) {
			l.logger.Warn("Skipping invalid wallet address", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		addresses = append(addresses, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning address file %s: %w", l.filePath, err)
	}

	l.logger.Debug("Addresses loaded from file", "count", len(addresses), "path", l.filePath)
	return addresses, nil
}
