// Package main implements the qmeasure CLI, which runs circuit files on the
// bundled statevector simulator and prints the measured statistics.
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/theapemachine/qmeasure"
	"github.com/theapemachine/qmeasure/simulator"
)

var (
	configPath string
	shots      int
	analytic   bool
	seed       uint64
	dump       bool
	version    = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "qmeasure",
	Short: "Measure quantum circuits on a statevector simulator",
	Long: `qmeasure executes circuit files and prints expectation values, variances,
samples and probabilities of the requested observables.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "device configuration file (YAML)")

	runCmd.Flags().IntVar(&shots, "shots", 1000, "number of samples drawn when samples are needed")
	runCmd.Flags().BoolVar(&analytic, "analytic", true, "compute exact statistics instead of sampled estimates")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the sampling generator (0 picks one at random)")
	runCmd.Flags().BoolVar(&dump, "dump", false, "dump the raw result values")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <circuit.yaml>",
	Short: "Execute a circuit file",
	Long: `Execute a circuit file on the statevector simulator.

Examples:
  # Exact statistics
  qmeasure run bell.yaml

  # Sampled estimates with a fixed seed
  qmeasure run bell.yaml --analytic=false --shots 100 --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runCircuit,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the qmeasure version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func runCircuit(cmd *cobra.Command, args []string) error {
	cfg, err := qmeasure.LoadConfig(configPath)
	if err != nil {
		return err
	}

	file, err := loadCircuitFile(args[0])
	if err != nil {
		return err
	}

	if file.Wires > 0 {
		cfg.Wires = file.Wires
	}

	flags := cmd.Flags()
	if flags.Changed("shots") {
		cfg.Shots = shots
	}
	if flags.Changed("analytic") {
		cfg.Analytic = analytic
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	circuit, err := file.Circuit()
	if err != nil {
		return err
	}

	backend, err := simulator.New(cfg.Wires)
	if err != nil {
		return err
	}

	device, err := qmeasure.NewDevice(backend, cfg)
	if err != nil {
		return err
	}

	results, err := device.Execute(circuit)
	if err != nil {
		return err
	}

	return printResults(cmd, circuit, results)
}

func printResults(cmd *cobra.Command, circuit qmeasure.Circuit, results qmeasure.Results) error {
	out := cmd.OutOrStdout()

	i := 0
	for _, obs := range circuit.Observables {
		if obs.Return == qmeasure.NoReturn {
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", obs, results.At(i))
		i++
	}

	if dump {
		spew.Fdump(out, results.Values())
	}

	return nil
}
