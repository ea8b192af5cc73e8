package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simondevenish/EmberScript/internal/cache"
	"github.com/simondevenish/EmberScript/internal/chunk"
	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/driver"
	"github.com/simondevenish/EmberScript/internal/embed"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a script to a .embc chunk or a native executable",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "output path: no extension or .exe emits a native executable, any other extension emits a .embc chunk")
}

// runCompile picks native-vs-chunk output from -o's extension: an output
// path with no extension or a .exe extension emits a standalone native
// executable; any other extension (including the default, .embc) emits a
// serialized chunk.
func runCompile(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		os.Exit(3)
	}

	out, _ := cmd.Flags().GetString("output")
	native := isNativeOutput(out)
	if out == "" {
		if native {
			out = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		} else {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".embc"
		}
	}

	diskCache, err := cache.Open("emberc")
	if err != nil {
		diskCache = nil
	}

	result, err := driver.RunCached(string(src), driver.BackendVM, diskCache)
	if result.Bag.HasErrors() {
		diag.Render(os.Stderr, args[0], result.Bag.Items(), true)
		os.Exit(1)
	}
	if err != nil || result.Chunk == nil {
		diag.RenderErr(os.Stderr, args[0], err, true)
		os.Exit(2)
	}

	encoded, err := chunk.Write(result.Chunk)
	if err != nil {
		return fmt.Errorf("emberc compile: %w", err)
	}

	if native {
		return buildNative(encoded, args[0], out)
	}

	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "emberc compile:", err)
		os.Exit(3)
	}
	return nil
}

// isNativeOutput reports whether path names a native-executable target: no
// extension at all, or an explicit .exe extension.
func isNativeOutput(path string) bool {
	if path == "" {
		return false // the default output is a .embc chunk
	}
	ext := filepath.Ext(path)
	return ext == "" || strings.EqualFold(ext, ".exe")
}

// buildNative writes the embed.Stub source to a scratch package inside the
// current module and shells out to `go build` to link it against the vm
// package. The stub must live inside the module tree: vm is reachable
// through internal/, and Go only lets importers under the same module root
// see internal packages.
func buildNative(chunkBytes []byte, sourcePath, outPath string) error {
	moduleRoot, err := findModuleRoot()
	if err != nil {
		return fmt.Errorf("emberc compile: native build requires running inside the ember module checkout: %w", err)
	}

	stubDir, err := os.MkdirTemp(moduleRoot, ".emberc-native-*")
	if err != nil {
		return fmt.Errorf("emberc compile: %w", err)
	}
	defer os.RemoveAll(stubDir)

	stubPath := filepath.Join(stubDir, "main.go")
	if err := os.WriteFile(stubPath, embed.Stub(chunkBytes, sourcePath), 0o644); err != nil {
		return fmt.Errorf("emberc compile: %w", err)
	}

	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return fmt.Errorf("emberc compile: %w", err)
	}

	buildCmd := exec.Command("go", "build", "-o", absOut, stubPath)
	buildCmd.Dir = stubDir
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		return fmt.Errorf("emberc compile: native build failed: %w", err)
	}
	return nil
}

// findModuleRoot walks up from the working directory looking for go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found")
		}
		dir = parent
	}
}
