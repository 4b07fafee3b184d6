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

package commands

import (
	"fmt"
	"io"

	"github.com/phuonguno98/unonet/internal/devices"
	"github.com/spf13/cobra"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List available network interfaces",
	Long: `List all network interfaces on the system with their hardware
addresses and IP addresses. This helps to configure include/exclude filters accurately.

Examples:
  # List all available interfaces
  unonet list-devices

  # Use the output to configure filters
  unonet --include-networks="eth0" --exclude-networks="lo"`,
	RunE: runListDevices,
}

func init() {
	rootCmd.AddCommand(listDevicesCmd)
}

func runListDevices(cmd *cobra.Command, args []string) error {
	return printDevices(cmd.OutOrStdout())
}

func printDevices(w io.Writer) error {
	fmt.Fprintln(w, "\n========================================")
	fmt.Fprintln(w, "   UnoNet - Available Devices")
	fmt.Fprintln(w, "========================================")

	networks, err := devices.ListNetworkInterfaces()
	if err != nil {
		return fmt.Errorf("error listing network interfaces: %w", err)
	}

	if len(networks) == 0 {
		fmt.Fprintln(w, "\nNo network interfaces found.")
		return nil
	}

	fmt.Fprint(w, devices.FormatNetworksTable(networks))
	fmt.Fprintln(w, "\nExample usage:")
	fmt.Fprintf(w, "  unonet --include-networks=\"%s\"\n", networks[0].Name)
	if len(networks) > 1 {
		fmt.Fprintf(w, "  unonet --exclude-networks=\"%s\"\n", networks[1].Name)
	}

	fmt.Fprintln(w, "\nNotes:")
	fmt.Fprintln(w, "  - Use comma to separate multiple interfaces: --exclude-networks=\"lo,docker0\"")
	fmt.Fprintln(w, "  - Exclude filters take priority over include filters")
	fmt.Fprintln(w, "  - Empty include list means monitor all interfaces (except excluded)")
	fmt.Fprintln(w)

	return nil
}
