package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/espdrone/configblock/internal/platform"
	"github.com/espdrone/configblock/pkg"
	"github.com/espdrone/configblock/pkg/configblock"
	"github.com/espdrone/configblock/pkg/logging"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

func newLogger(name string) hclog.Logger {
	return logging.NewLogger(name, logging.ResolveLogLevel(logLevel), nil)
}

// resolveMedium picks the image location from, in order: the argument,
// the platform profile, the environment.
func resolveMedium(args []string) (platform.MediumConfig, error) {
	var medium platform.MediumConfig

	if platformPath != "" {
		cfg, err := platform.LoadProfile(platformPath)
		if err != nil {
			return medium, err
		}
		medium = cfg.Medium
	} else {
		cfg := &platform.Config{}
		platform.Normalize(cfg)
		if err := platform.ApplyEnv(cfg); err != nil {
			return medium, err
		}
		medium = cfg.Medium
	}

	if len(args) > 0 {
		medium.Path = args[0]
	}
	if offsetFlag != "" {
		offset, err := platform.ParseOffset(offsetFlag)
		if err != nil {
			return medium, err
		}
		medium.Offset = offset
	}

	return medium, nil
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [image]",
		Short: "Load the block as the device would and print the served parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			medium, err := resolveMedium(args)
			if err != nil {
				return err
			}

			logger := newLogger("configblock-inspect")
			block := configblock.New(medium.Source(), configblock.WithLogger(logger))
			status := block.Init()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image:    %s", medium.Path)
			if info, err := os.Stat(medium.Path); err == nil {
				fmt.Fprintf(out, " (%s)", humanize.IBytes(uint64(info.Size())))
			}
			fmt.Fprintf(out, "\noffset:   0x%X\n", medium.Offset)
			fmt.Fprintf(out, "origin:   %s\n", status.Origin)
			if status.Err != nil {
				fmt.Fprintf(out, "reason:   %v\n", status.Err)
			}
			printParameters(out, block.Parameters())

			if raw, err := medium.Source().ReadBlock(); err == nil {
				fmt.Fprintf(out, "digest:   %s\n", configblock.CalculateChecksum(raw, configblock.ChecksumSHA256))
			}
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	var expect string

	cmd := &cobra.Command{
		Use:   "verify [image]",
		Short: "Run every structural check on the stored record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			medium, err := resolveMedium(args)
			if err != nil {
				return err
			}

			logger := newLogger("configblock-verify")
			if logLevel == "" && os.Getenv("CONFIGBLOCK_LOG_LEVEL") == "" {
				logger.SetLevel(hclog.Info)
			}

			src := medium.Source()
			verr := pkg.VerifyImageWithLogger(src, logger)

			if expect != "" {
				raw, err := src.ReadBlock()
				if err != nil {
					return errors.Join(verr, err)
				}
				ok, err := configblock.VerifyChecksum(raw, expect)
				if err != nil {
					return errors.Join(verr, err)
				}
				if !ok {
					logger.Error("✗ Record digest mismatch", "expected", expect)
					verr = errors.Join(verr, fmt.Errorf("record digest does not match %s", expect))
				} else {
					logger.Info("✓ Record digest matches", "expected", expect)
				}
			}

			if verr != nil {
				return fmt.Errorf("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&expect, "expect", "", "Expected record digest (e.g. sha256:..., adler32:...)")
	return cmd
}

func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the compiled-in default parameters",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printParameters(cmd.OutOrStdout(), configblock.DefaultParameters())
		},
	}
}

func newEncodeCmd() *cobra.Command {
	var (
		outputPath string
		channel    uint8
		speed      uint8
		address    string
		pitch      float32
		roll       float32
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write a new image file holding a sealed record (host-side provisioning)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := strconv.ParseUint(address, 0, 64)
			if err != nil {
				return fmt.Errorf("invalid address %q: %w", address, err)
			}

			medium, err := resolveMedium(nil)
			if err != nil {
				return err
			}
			limit := medium.Size
			if limit == 0 {
				limit = platform.MaxMediumSize
			}
			if err := platform.CheckFit(medium.Offset, limit); err != nil {
				return fmt.Errorf("cannot encode image: %w", err)
			}

			params := configblock.Parameters{
				RadioChannel: channel,
				RadioSpeed:   configblock.RadioSpeed(speed),
				RadioAddress: addr,
				CalibPitch:   pitch,
				CalibRoll:    roll,
			}
			record := configblock.Encode(params)

			logger := newLogger("configblock-encode")
			for _, issue := range params.RangeIssues() {
				logger.Warn("⚠️ Value out of hardware range", "issue", issue)
			}

			flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			if !force {
				flags |= os.O_EXCL
			}
			file, err := os.OpenFile(outputPath, flags, 0o644)
			if err != nil {
				return err
			}
			if err := writeImage(file, medium.Offset, record); err != nil {
				file.Close()
				os.Remove(outputPath)
				return err
			}
			if err := file.Close(); err != nil {
				os.Remove(outputPath)
				return err
			}

			size := uint64(medium.Offset) + configblock.RecordSize
			logger.Info("✓ Image written", "path", outputPath, "size", humanize.IBytes(size))
			return nil
		},
	}

	defaults := configblock.DefaultParameters()
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output image path (required)")
	cmd.Flags().Uint8Var(&channel, "channel", defaults.RadioChannel, "Radio channel")
	cmd.Flags().Uint8Var(&speed, "speed", uint8(defaults.RadioSpeed), "Radio data rate (0=250K, 1=1M, 2=2M)")
	cmd.Flags().StringVar(&address, "address", fmt.Sprintf("0x%X", defaults.RadioAddress), "Radio link address")
	cmd.Flags().Float32Var(&pitch, "pitch", defaults.CalibPitch, "Pitch calibration offset")
	cmd.Flags().Float32Var(&roll, "roll", defaults.CalibRoll, "Roll calibration offset")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing output file")

	if err := cmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
	return cmd
}

var erasedPage = bytes.Repeat([]byte{0xFF}, 4096)

// writeImage places record at offset. Bytes before it read as erased flash.
func writeImage(w io.WriterAt, offset int64, record []byte) error {
	for pos := int64(0); pos < offset; {
		n := min(int64(len(erasedPage)), offset-pos)
		if _, err := w.WriteAt(erasedPage[:n], pos); err != nil {
			return err
		}
		pos += n
	}
	_, err := w.WriteAt(record, offset)
	return err
}

func printParameters(out io.Writer, p configblock.Parameters) {
	fmt.Fprintf(out, "channel:  %d\n", p.RadioChannel)
	fmt.Fprintf(out, "speed:    %s (%d)\n", p.RadioSpeed, uint8(p.RadioSpeed))
	fmt.Fprintf(out, "address:  0x%010X\n", p.RadioAddress)
	fmt.Fprintf(out, "pitch:    %g\n", p.CalibPitch)
	fmt.Fprintf(out, "roll:     %g\n", p.CalibRoll)
	for _, issue := range p.RangeIssues() {
		fmt.Fprintf(out, "warning:  %s\n", issue)
	}
}
