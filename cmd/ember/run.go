package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simondevenish/EmberScript/internal/cache"
	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/driver"
	"github.com/simondevenish/EmberScript/internal/project"
	"github.com/simondevenish/EmberScript/internal/shell"
	"github.com/simondevenish/EmberScript/internal/vm"
)

// runRoot implements both `ember <script>` and the no-argument entry point:
// with no script argument it first tries to resolve ember.toml's [run] main
// before falling back to the interactive shell.
func runRoot(cmd *cobra.Command, args []string) error {
	colorize, _ := cmd.Flags().GetString("color")
	colorOn := colorize != "off"

	scriptPath := ""
	if len(args) > 0 {
		scriptPath = args[0]
	} else {
		manifestPath, ok, err := project.Find(".")
		if err != nil {
			return fmt.Errorf("ember: %w", err)
		}
		if ok {
			manifest, err := project.Load(manifestPath)
			if err != nil {
				return fmt.Errorf("ember: %w", err)
			}
			scriptPath = manifest.MainScript()
		} else if term.IsTerminal(int(os.Stdin.Fd())) {
			return shell.Run()
		} else {
			return fmt.Errorf("ember: no script given, no ember.toml found, and stdin is not a terminal")
		}
	}

	src, err := os.ReadFile(scriptPath)
	if err != nil {
		os.Exit(3)
	}

	backendName, _ := cmd.Flags().GetString("backend")
	backend := driver.BackendVM
	if backendName == "eval" {
		backend = driver.BackendEval
	}

	trace, _ := cmd.Flags().GetBool("trace")
	var traceHook func(int, chunk.Op)
	if trace {
		traceHook = func(addr int, op chunk.Op) {
			fmt.Fprintf(os.Stderr, "%04d %s\n", addr, op)
		}
	}

	diskCache, err := cache.Open("ember")
	if err != nil {
		diskCache = nil // caching is an optimization; a warm cache is never required for correctness
	}

	result, err := runBackend(string(src), backend, traceHook, diskCache)
	if result.Bag.HasErrors() {
		diag.Render(os.Stderr, scriptPath, result.Bag.Items(), colorOn)
		os.Exit(1)
	}
	for _, line := range result.Output {
		fmt.Println(line)
	}
	if err != nil {
		diag.RenderErr(os.Stderr, scriptPath, err, colorOn)
		os.Exit(2)
	}
	return nil
}

// runBackend runs src through driver.RunCached, except when --trace is in
// play on the vm backend: tracing needs a live *vm.VM to attach its hook
// to, so it compiles directly via driver.CompileChunk and runs the chunk
// itself instead of going through RunCached's cache-aware, all-in-one
// path. --trace and the compile cache are independent knobs that simply
// don't compose in this CLI.
func runBackend(src string, backend driver.Backend, traceHook func(int, chunk.Op), diskCache *cache.Disk) (*driver.Result, error) {
	if traceHook == nil || backend != driver.BackendVM {
		return driver.RunCached(src, backend, diskCache)
	}

	compiled, err := driver.CompileChunk(src)
	if err != nil || compiled.Bag.HasErrors() || compiled.Chunk == nil {
		return compiled, err
	}
	m := vm.New(compiled.Chunk)
	m.Trace = traceHook
	var output []string
	runErr := m.Run(func(s string) { output = append(output, s) })
	compiled.Output = output
	if runErr != nil {
		return compiled, fmt.Errorf("runtime error: %w", runErr)
	}
	return compiled, nil
}
