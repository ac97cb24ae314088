// Command fpzc is a thin packaging shell around the fpz library: it parses
// flags, reads/writes files, and calls the public API. It contains no codec
// logic of its own and is kept minimal on purpose.
package main

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scidata-io/fpz"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Error("fpzc failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "fpzc",
		Short: "Compress and decompress FPZ floating-point arrays",
	}
	root.AddCommand(newCompressCmd(logger))
	root.AddCommand(newDecompressCmd(logger))
	return root
}

func newCompressCmd(logger *zap.Logger) *cobra.Command {
	var nx, ny, nz, nf int
	var double bool

	cmd := &cobra.Command{
		Use:   "compress [in] [out]",
		Short: "Compress a raw little-endian float array into an FPZ stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			var out []byte
			if double {
				samples, err := bytesToFloat64(raw)
				if err != nil {
					return err
				}
				out, err = fpz.CompressF64(samples, nx, ny, nz, nf)
				if err != nil {
					return err
				}
			} else {
				samples, err := bytesToFloat32(raw)
				if err != nil {
					return err
				}
				out, err = fpz.Compress(samples, nx, ny, nz, nf)
				if err != nil {
					return err
				}
			}

			if err := os.WriteFile(args[1], out, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			logger.Info("compressed", zap.Int("raw_bytes", len(raw)), zap.Int("coded_bytes", len(out)))
			return nil
		},
	}

	cmd.Flags().IntVar(&nx, "nx", 1, "grid size in x")
	cmd.Flags().IntVar(&ny, "ny", 1, "grid size in y")
	cmd.Flags().IntVar(&nz, "nz", 1, "grid size in z")
	cmd.Flags().IntVar(&nf, "nf", 1, "number of fields")
	cmd.Flags().BoolVar(&double, "double", false, "input is float64 instead of float32")
	return cmd
}

func newDecompressCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompress [in] [out]",
		Short: "Decompress an FPZ stream back into a raw little-endian float array",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			header, err := fpz.ReadHeader(data)
			if err != nil {
				return err
			}

			var raw []byte
			switch header.Type {
			case fpz.TypeFloat32:
				samples, _, err := fpz.DecompressF32(data)
				if err != nil {
					return err
				}
				raw = float32ToBytes(samples)
			case fpz.TypeFloat64:
				samples, _, err := fpz.DecompressF64(data)
				if err != nil {
					return err
				}
				raw = float64ToBytes(samples)
			default:
				return fmt.Errorf("unrecognized sample type %v", header.Type)
			}

			if err := os.WriteFile(args[1], raw, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			logger.Info("decompressed", zap.Int("coded_bytes", len(data)), zap.Int("raw_bytes", len(raw)))
			return nil
		},
	}
	return cmd
}

func bytesToFloat32(raw []byte) ([]float32, error) {
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("input length %d is not a multiple of 4", len(raw))
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}

func bytesToFloat64(raw []byte) ([]float64, error) {
	if len(raw)%8 != 0 {
		return nil, fmt.Errorf("input length %d is not a multiple of 8", len(raw))
	}
	out := make([]float64, len(raw)/8)
	for i := range out {
		bits := binary.LittleEndian.Uint64(raw[i*8:])
		out[i] = math.Float64frombits(bits)
	}
	return out, nil
}

func float32ToBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func float64ToBytes(samples []float64) []byte {
	out := make([]byte, len(samples)*8)
	for i, v := range samples {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}
