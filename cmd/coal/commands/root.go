// Package commands wires Coal's CLI surface on top of cobra,
// following the rootCmd/PersistentFlags shape of
// panyam-sdl/cmd/sdl/commands/root.go.
package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coal-lang/coal/internal/diag"
	"github.com/coal-lang/coal/internal/emit"
	"github.com/coal-lang/coal/internal/lexer"
	"github.com/coal-lang/coal/internal/parser"
	"github.com/coal-lang/coal/internal/types"
)

var (
	inputPath     string
	outputPath    string
	ccName        string
	emitTokens    bool
	emitJSONToks  bool
	emitAST       bool
	emitIR        bool
	keepLL        bool
)

var rootCmd = &cobra.Command{
	Use:           "coal",
	Short:         "Coal compiles a single .coal source file to a native binary via LLVM IR",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompile,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to source file (required)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "final binary path (default: input base name)")
	rootCmd.Flags().StringVar(&ccName, "cc", "clang", "compiler driver override")
	rootCmd.Flags().BoolVar(&emitTokens, "emit-tokens", false, "print tokens, one per line")
	rootCmd.Flags().BoolVar(&emitJSONToks, "emit-json-tokens", false, "print tokens as a JSON array")
	rootCmd.Flags().BoolVar(&emitAST, "emit-ast", false, "print the parsed AST as JSON")
	rootCmd.Flags().BoolVar(&emitIR, "emit-ir", false, "print the generated IR module and exit")
	rootCmd.Flags().BoolVar(&keepLL, "keep-ll", false, "retain the intermediate .ll file next to the output")
}

// Execute runs the root command, translating a CLI usage failure to exit
// code 1 and a compilation failure to exit code 2.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if d, ok := err.(*diag.Diagnostic); ok {
			renderDiagnostic(os.Stderr, d)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCompile(cmd *cobra.Command, args []string) error {
	if inputPath == "" {
		return fmt.Errorf("--input/-i is required")
	}
	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	source := string(src)
	// Retained for caret rendering in renderDiagnostic.
	lastSource = source

	toks, lexErr := lexer.Lex(inputPath, source)
	if lexErr != nil {
		return lexErr.ToDiagnostic()
	}

	if emitTokens {
		printTokens(cmd.OutOrStdout(), toks)
		return nil
	}
	if emitJSONToks {
		return printTokensJSON(cmd.OutOrStdout(), toks)
	}

	prog, parseErr := parser.Parse(toks)
	if parseErr != nil {
		return parseErr
	}

	if emitAST {
		return printASTJSON(cmd.OutOrStdout(), prog)
	}

	table, checkErr := types.Check(prog)
	if checkErr != nil {
		return checkErr
	}

	ir, emitErr := emit.Emit(prog, table, filepath.Base(inputPath))
	if emitErr != nil {
		return emitErr
	}

	if emitIR {
		fmt.Fprintln(cmd.OutOrStdout(), ir)
		return nil
	}

	return link(ir)
}

// link writes the IR to a temporary .ll file and invokes the external
// compiler driver to produce the final binary. This is
// explicitly a CLI-collaborator concern, not part of the compiler core.
func link(ir string) error {
	out := outputPath
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		if runtime.GOOS == "windows" {
			base += ".exe"
		}
		out = base
	}
	llPath := out + ".ll"
	if err := os.WriteFile(llPath, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", llPath, err)
	}
	if !keepLL {
		defer os.Remove(llPath)
	}

	driver := ccName
	if driver == "" {
		driver = "clang"
	}
	c := exec.Command(driver, llPath, "-o", out)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("invoking %s: %w", driver, err)
	}
	return nil
}
