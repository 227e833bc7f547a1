package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corewasm/vertexvm/internal/config"
	"github.com/corewasm/vertexvm/internal/obslog"
	"github.com/corewasm/vertexvm/interp"
	"github.com/corewasm/vertexvm/store"
	"github.com/corewasm/vertexvm/wasm"
)

var (
	runExport string
	rawArgs   []string
	stackSize int
	maxFrames int
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "vertexvm <file.wasm>",
	Short: "Decode and run a minimal Wasm binary's exported function",
	Args:  cobra.ExactArgs(1),
	RunE:  run,

	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&runExport, "run-export", "r", "", "name of the exported function to invoke (required)")
	flags.StringArrayVarP(&rawArgs, "argument", "a", nil, "argument value to pass to the export, in order; repeatable")
	flags.IntVar(&stackSize, "stack-size", 0, "override the configured max value stack depth (0 = unbounded)")
	flags.IntVar(&maxFrames, "max-frames", 0, "override the configured max call depth (0 = unbounded)")
	flags.StringVar(&logLevel, "log-level", "", "override the configured log level")
	_ = rootCmd.MarkFlagRequired("run-export")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vertexvm:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("stack-size") {
		cfg.StackSize = stackSize
	}
	if cmd.Flags().Changed("max-frames") {
		cfg.MaxFrames = maxFrames
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	log := obslog.New(cfg.LogLevel)

	path := args[0]
	bin, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	mod, err := wasm.DecodeWithLogger(bin, log)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	s := store.New()
	inst, err := store.InstantiateWithLogger(s, mod, log)
	if err != nil {
		return fmt.Errorf("instantiating %s: %w", path, err)
	}

	addr, ok := inst.Lookup(runExport)
	if !ok {
		return fmt.Errorf("%s: no function export named %q", path, runExport)
	}
	fn, ok := s.Get(addr)
	if !ok {
		return fmt.Errorf("%s: export %q resolved to an invalid function address", path, runExport)
	}

	vals, err := bindArgs(fn.Type.Params, rawArgs)
	if err != nil {
		return fmt.Errorf("binding arguments for %q: %w", runExport, err)
	}

	vm := interp.New(s, inst, log, cfg.MaxFrames, cfg.StackSize)
	results, trap := vm.Invoke(runExport, vals...)
	if trap != nil {
		return fmt.Errorf("%s: %s: %w", path, runExport, trap)
	}

	printResults(results)
	return nil
}

// bindArgs parses rawArgs positionally against the export's declared
// parameter types: integers truncate into i32 where the target type is i32,
// floats parse as the target's bit width.
func bindArgs(params []wasm.ValueType, rawArgs []string) ([]interp.Value, error) {
	if len(rawArgs) != len(params) {
		return nil, fmt.Errorf("expected %d argument(s), got %d", len(params), len(rawArgs))
	}
	vals := make([]interp.Value, len(params))
	for i, raw := range rawArgs {
		switch params[i] {
		case wasm.ValueTypeI32:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals[i] = interp.I32Val(int32(n))
		case wasm.ValueTypeI64:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals[i] = interp.I64Val(n)
		case wasm.ValueTypeF32:
			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals[i] = interp.F32Val(float32(f))
		case wasm.ValueTypeF64:
			f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals[i] = interp.F64Val(f)
		default:
			return nil, fmt.Errorf("argument %d: unsupported parameter type %s", i, params[i])
		}
	}
	return vals, nil
}

func printResults(results []interp.Value) {
	parts := make([]string, len(results))
	for i, v := range results {
		switch v.Type {
		case wasm.ValueTypeI32:
			parts[i] = strconv.FormatInt(int64(v.I32), 10)
		case wasm.ValueTypeI64:
			parts[i] = strconv.FormatInt(v.I64, 10)
		case wasm.ValueTypeF32:
			parts[i] = strconv.FormatFloat(float64(v.F32), 'g', -1, 32)
		case wasm.ValueTypeF64:
			parts[i] = strconv.FormatFloat(v.F64, 'g', -1, 64)
		}
	}
	fmt.Println(strings.Join(parts, " "))
}
