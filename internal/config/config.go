/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PollInterval is how long the dashboard waits for input before a refresh tick.
// It is fixed and intentionally not exposed as a flag.
const PollInterval = 250 * time.Millisecond

// Config represents application configuration.
type Config struct {
	// History
	HistorySize int // Samples kept per interface for the sparkline
	PruneAfter  int // Absent ticks before an interface's history is dropped (0 = never)

	// Filters
	IncludeNetworks []string // Network interfaces to monitor (empty = all)
	ExcludeNetworks []string // Network interfaces to exclude

	// Logging
	LogLevel string // Log level: debug, info, warn, error
	LogFile  string // Log file path (empty = discard, the terminal belongs to the UI)
}

// Default configuration values.
const (
	DefaultHistorySize = 512
	DefaultPruneAfter  = 0
	DefaultLogLevel    = "info"

	MaxHistorySize = 65536
)

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		HistorySize: DefaultHistorySize,
		PruneAfter:  DefaultPruneAfter,
		LogLevel:    DefaultLogLevel,
	}
}

// parseCommaSeparated parses a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ParseCommaSeparated is the exported version of parseCommaSeparated.
func ParseCommaSeparated(s string) []string {
	return parseCommaSeparated(s)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.HistorySize < 1 {
		return errors.New("history size must be at least 1")
	}

	if c.HistorySize > MaxHistorySize {
		return fmt.Errorf("history size must not exceed %d", MaxHistorySize)
	}

	if c.PruneAfter < 0 {
		return errors.New("prune-after must not be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	for _, name := range c.IncludeNetworks {
		for _, excluded := range c.ExcludeNetworks {
			if name == excluded {
				return fmt.Errorf("interface %q is both included and excluded", name)
			}
		}
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{PollInterval=%v, HistorySize=%d, PruneAfter=%d, Include=%v, Exclude=%v}",
		PollInterval, c.HistorySize, c.PruneAfter, c.IncludeNetworks, c.ExcludeNetworks)
}
