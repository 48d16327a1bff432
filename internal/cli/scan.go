package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover nearby GoCube devices",
	Long: `Scan for GoCube smart cubes over Bluetooth Low Energy.

Make sure the cube is awake (rotate it) and not connected to a phone.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Second, "How long to scan")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("Scanning for GoCube devices...")
	devices, err := scanDevices(cmd.Context(), scanTimeout)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Println("No GoCube found. Rotate the cube to wake it and try again.")
		return nil
	}
	fmt.Printf("%-20s  %-40s  %s\n", "NAME", "ADDRESS", "RSSI")
	for _, d := range devices {
		fmt.Printf("%-20s  %-40s  %d dBm\n", d.Name, d.Address, d.RSSI)
	}
	return nil
}

// scanDevices runs one scan with a context bounded by timeout.
func scanDevices(parent context.Context, timeout time.Duration) ([]cubesim.Device, error) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout+time.Second)
	defer cancel()
	devices, err := cubesim.Scan(ctx, timeout, cubesim.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("BLE scan failed: %w", err)
	}
	return devices, nil
}

// connectDevice scans and connects to the first GoCube found.
func connectDevice(ctx context.Context) (*cubesim.DeviceSource, error) {
	fmt.Println("Scanning for GoCube devices...")
	devices, err := scanDevices(ctx, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, cubesim.ErrDeviceNotFound
	}
	fmt.Printf("Found: %s\n", devices[0].Name)
	return cubesim.Connect(ctx, devices[0], cubesim.WithLogger(logger))
}
