package macroprep

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/macroprep/macroprep-cli/internal/app"
)

// resetFlags puts every flag back to its default so rootCmd can be executed
// repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macroprep.db")
	out, err := runCLI(t, "--db", path, "init")
	if err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if strings.Contains(out, "Seeded 0 ingredients") {
		t.Fatalf("expected first init to seed the catalog, got %q", out)
	}
	out, err = runCLI(t, "--db", path, "init")
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(out, "Seeded 0 ingredients") {
		t.Fatalf("expected second init to add nothing, got %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "macroprep ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestParseQuantityPair(t *testing.T) {
	name, qty, err := parseQuantityPair("item", "Greek Yogurt (0%)=250")
	if err != nil {
		t.Fatalf("parse pair: %v", err)
	}
	if name != "Greek Yogurt (0%)" || qty != 250 {
		t.Fatalf("unexpected pair %q %v", name, qty)
	}
	for _, raw := range []string{"rice", "=100", "rice=", "rice=abc"} {
		if _, _, err := parseQuantityPair("item", raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestReportErrorPrintsOnce(t *testing.T) {
	saved := logger
	t.Cleanup(func() { logger = saved })

	logged := &bytes.Buffer{}
	logger = logrus.New()
	logger.SetOutput(logged)
	logger.SetLevel(logrus.WarnLevel)
	plain := &bytes.Buffer{}
	reportError(plain, errors.New("batch 7 not found"))
	if strings.Count(logged.String(), "batch 7 not found") != 1 || plain.Len() != 0 {
		t.Fatalf("expected one logged error, got log %q plain %q", logged.String(), plain.String())
	}

	logged.Reset()
	logger.SetLevel(logrus.PanicLevel)
	reportError(plain, errors.New("batch 7 not found"))
	if logged.Len() != 0 || plain.String() != "batch 7 not found\n" {
		t.Fatalf("expected one plain error, got log %q plain %q", logged.String(), plain.String())
	}

	plain.Reset()
	logger = app.DiscardLogger()
	reportError(plain, errors.New("bad flag"))
	if plain.String() != "bad flag\n" {
		t.Fatalf("expected plain error with a silent logger, got %q", plain.String())
	}
}
