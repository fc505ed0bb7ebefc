//go:build !tinygo

// Command mkflash builds and inspects the flash image the host HAL uses,
// seeding it with a band table.
package main

import (
	"fmt"
	"io"
	"os"

	"usdr/hal"
	"usdr/hmi/radio"
	"usdr/hmi/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mkflash",
		Short:        "Build and inspect uSDR flash images",
		SilenceUsage: true,
	}
	root.AddCommand(newWriteCmd(), newDumpCmd())
	return root
}

func newWriteCmd() *cobra.Command {
	var (
		bandsPath string
		outPath   string
		size      uint32
	)
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write a band table into a flash image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles := radio.DefaultProfiles()
			if bandsPath != "" {
				p, err := readBands(bandsPath)
				if err != nil {
					return err
				}
				profiles = p
			}
			if err := writeImage(outPath, size, profiles); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mkflash: wrote %d bands to %s\n", len(profiles), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&bandsPath, "bands", "", "YAML file with a bands list (default: factory table)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "usdr.flash", "output flash image")
	cmd.Flags().Uint32Var(&size, "size", hal.HostFlashSize, "flash image size in bytes")
	return cmd
}

func newDumpCmd() *cobra.Command {
	var inPath string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the band table stored in a flash image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dumpImage(cmd.OutOrStdout(), inPath)
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "usdr.flash", "flash image to read")
	return cmd
}

// readBands accepts the same bands list as the config file.
func readBands(path string) ([]radio.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bands %q: %w", path, err)
	}
	var doc store.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bands %q: %w", path, err)
	}
	if len(doc.Bands) == 0 {
		return nil, fmt.Errorf("bands %q: empty band table", path)
	}
	for _, p := range doc.Bands {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("bands %q: %w", path, err)
		}
	}
	return doc.Bands, nil
}

func writeImage(path string, size uint32, profiles []radio.Profile) error {
	f, err := hal.OpenFlashFile(path, size)
	if err != nil {
		return fmt.Errorf("open flash %q: %w", path, err)
	}
	defer f.Close()
	return store.New(f).SaveProfiles(profiles)
}

func dumpImage(w io.Writer, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	f, err := hal.OpenFlashFile(path, hal.HostFlashSize)
	if err != nil {
		return fmt.Errorf("open flash %q: %w", path, err)
	}
	defer f.Close()

	profiles, err := store.New(f).LoadProfiles()
	if err != nil {
		return err
	}
	b, err := store.Encode(profiles)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
