package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ixtza/ajk/pagesim/trace"
)

var generateCmd = &cobra.Command{
	Use:   "generate <output-file> <distinct-addresses> <references>",
	Short: "Write a synthetic trace with strong locality.",
	Long: "`generate` draws <distinct-addresses> random addresses and writes " +
		"<references> lines choosing among them with a normal distribution. " +
		"Files ending in .sz or .lz4 are compressed.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		distinct, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("distinct addresses %q: %w", args[1], err)
		}
		references, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("references %q: %w", args[2], err)
		}

		flags := cmd.Flags()
		seed, _ := flags.GetUint64("seed")
		stdDev, _ := flags.GetFloat64("stddev")
		writeRatio, _ := flags.GetFloat64("write-ratio")
		dump, _ := flags.GetBool("dump")

		gen := trace.MakeGeneratorBuilder().
			WithDistinct(distinct).
			WithReferences(references).
			WithStdDev(stdDev).
			WithWriteRatio(writeRatio).
			WithSeed(seed).
			Build()

		records, err := trace.WriteFile(args[0], gen)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "New Trace File: %s\n", args[0])
		if dump {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Register | Type")
			for _, r := range trace.SortRecords(records) {
				fmt.Fprintln(out, r)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Uint64("seed", 1, "random seed")
	generateCmd.Flags().Float64("stddev", 2.0, "standard deviation of the address choice, in pool positions")
	generateCmd.Flags().Float64("write-ratio", 0.1, "probability that a reference is a write")
	generateCmd.Flags().Bool("dump", false, "print the generated records sorted by address")
}
