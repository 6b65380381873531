package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zetafield/internal/stats"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	workdir := t.TempDir()
	if err := os.Chdir(workdir); err != nil {
		t.Fatalf("chdir tempdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origWD)
	})
	return workdir
}

func TestRunWithoutCommandFails(t *testing.T) {
	err := run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected usage error")
	}
	if !strings.Contains(err.Error(), "usage: zetafieldctl") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunUnknownCommandFails(t *testing.T) {
	err := run(context.Background(), []string{"bogus"})
	if err == nil || !strings.Contains(err.Error(), "unknown command: bogus") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestDriftCommandPrintsTrajectoryAndWritesArtifacts(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"drift",
			"--triads", "paralum,paracava,parabrill;parabrill,parascint,paralum;paralum,paracava,parabrill",
		})
	})
	if err != nil {
		t.Fatalf("drift command: %v", err)
	}
	if !strings.Contains(out, "steps=3") {
		t.Fatalf("expected three steps in output: %s", out)
	}
	if !strings.Contains(out, "step 1:") || !strings.Contains(out, "step 3:") {
		t.Fatalf("expected per-step lines: %s", out)
	}

	entries, err := stats.ListRunIndex("exports")
	if err != nil {
		t.Fatalf("list run index: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one indexed run, got %d", len(entries))
	}
	if entries[0].Kind != "drift" {
		t.Fatalf("expected drift run kind, got %s", entries[0].Kind)
	}
	trajectoryPath := filepath.Join("exports", entries[0].RunID, "trajectory.json")
	if _, err := os.Stat(trajectoryPath); err != nil {
		t.Fatalf("expected trajectory artifact: %v", err)
	}
}

func TestDriftCommandRequiresTriads(t *testing.T) {
	chdirTemp(t)

	if err := run(context.Background(), []string{"drift"}); err == nil {
		t.Fatal("expected missing triads error")
	}
}

func TestDriftCommandPlotRendersGrid(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"drift",
			"--plot",
			"--triads", "paralum,paracava,parabrill;parabrill,parascint,paralum",
		})
	})
	if err != nil {
		t.Fatalf("drift command: %v", err)
	}
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Fatalf("expected step markers in plot: %s", out)
	}
}

func TestFractalCommandPrintsDescent(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"fractal",
			"--x", "1.0",
			"--y", "0.5",
			"--tokens", "triad,triad,extend,triad,alternate,triad",
			"--max-depth", "3",
		})
	})
	if err != nil {
		t.Fatalf("fractal command: %v", err)
	}
	if !strings.Contains(out, "zeta=1.1960") {
		t.Fatalf("expected folded curvature in output: %s", out)
	}
	if !strings.Contains(out, "levels=4") {
		t.Fatalf("expected four levels: %s", out)
	}
	if !strings.Contains(out, "level 0") || !strings.Contains(out, "level 3") {
		t.Fatalf("expected descent listing: %s", out)
	}
}

func TestFractalCommandRejectsUnknownToken(t *testing.T) {
	chdirTemp(t)

	err := run(context.Background(), []string{
		"fractal",
		"--tokens", "triad,wobble",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown token kind: wobble") {
		t.Fatalf("expected unknown token error, got %v", err)
	}
}

func TestSpiralCommandReportsIrreversibleClimb(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"spiral",
			"--gradients", "vertical:0.8,0.5,0.6;lateral:0.5,0.4,0.8;diagonal:0.6,0.4,0.7,0.5",
			"--steps", "3",
		})
	})
	if err != nil {
		t.Fatalf("spiral command: %v", err)
	}
	if !strings.Contains(out, "irreversible=true") {
		t.Fatalf("expected irreversible climb: %s", out)
	}
	for _, kind := range []string{"vertical", "lateral", "diagonal"} {
		if !strings.Contains(out, "gradient "+kind+":") {
			t.Fatalf("expected %s gradient line: %s", kind, out)
		}
	}
}

func TestSpiralCommandRejectsBadGradientSpec(t *testing.T) {
	chdirTemp(t)

	err := run(context.Background(), []string{
		"spiral",
		"--gradients", "vertical:0.8,0.5",
	})
	if err == nil || !strings.Contains(err.Error(), "vertical gradient needs 3 weights") {
		t.Fatalf("expected weight count error, got %v", err)
	}

	err = run(context.Background(), []string{
		"spiral",
		"--gradients", "sideways:0.1,0.2,0.3",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown gradient kind") {
		t.Fatalf("expected unknown kind error, got %v", err)
	}
}

func TestHelixCommandTracesClosedFormPath(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"helix",
			"--gradient", "vertical:0.8,0.5,0.6",
			"--revolutions", "1",
			"--points-per-revolution", "12",
		})
	})
	if err != nil {
		t.Fatalf("helix command: %v", err)
	}
	if !strings.Contains(out, "points=12") {
		t.Fatalf("expected twelve path points: %s", out)
	}
	if !strings.Contains(out, "start: (1.00, 0.00, zeta=0.000)") {
		t.Fatalf("expected helix to start on the base radius: %s", out)
	}
}

func TestHelixCommandRejectsMultipleGradients(t *testing.T) {
	err := run(context.Background(), []string{
		"helix",
		"--gradient", "vertical:0.8,0.5,0.6;lateral:0.5,0.4,0.8",
	})
	if err == nil || !strings.Contains(err.Error(), "exactly one gradient") {
		t.Fatalf("expected single gradient error, got %v", err)
	}
}

func TestSedimentCommandShowsSettling(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"sediment",
			"--steps", "3",
		})
	})
	if err != nil {
		t.Fatalf("sediment command: %v", err)
	}
	if !strings.Contains(out, "steps=6") {
		t.Fatalf("expected six recorded steps: %s", out)
	}
	if !strings.Contains(out, "coherence=") {
		t.Fatalf("expected coherence summary: %s", out)
	}
}

func TestCurvatureCommandFoldsTokens(t *testing.T) {
	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"curvature",
			"--tokens", "triad,triad,extend,triad,alternate,triad",
		})
	})
	if err != nil {
		t.Fatalf("curvature command: %v", err)
	}
	if !strings.Contains(out, "curvature=1.1960") {
		t.Fatalf("unexpected curvature output: %s", out)
	}
}

func TestDetectCommandScoresPattern(t *testing.T) {
	out, err := captureStdout(func() error {
		return run(context.Background(), []string{
			"detect",
			"--samples", "0.1,0.3,0.5,0.2,0.4,0.6,0.15,0.35,0.55",
			"--windows", "3",
		})
	})
	if err != nil {
		t.Fatalf("detect command: %v", err)
	}
	if !strings.Contains(out, "self-similar=true") {
		t.Fatalf("expected self-similar pattern: %s", out)
	}
}

func TestRunsCommandWithEmptyStore(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"runs"})
	})
	if err != nil {
		t.Fatalf("runs command: %v", err)
	}
	if !strings.Contains(out, "no runs recorded") {
		t.Fatalf("expected empty listing: %s", out)
	}
}

func TestExportCommandRequiresRunID(t *testing.T) {
	if err := run(context.Background(), []string{"export"}); err == nil {
		t.Fatal("expected missing run id error")
	}
}

func TestDeleteCommandRequiresRunID(t *testing.T) {
	if err := run(context.Background(), []string{"delete"}); err == nil {
		t.Fatal("expected missing run id error")
	}
}

func TestInitCommandMemoryStore(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"init"})
	})
	if err != nil {
		t.Fatalf("init command: %v", err)
	}
	if !strings.Contains(out, "initialized store=memory") {
		t.Fatalf("unexpected init output: %s", out)
	}
}

func TestResetCommandMemoryStore(t *testing.T) {
	chdirTemp(t)

	out, err := captureStdout(func() error {
		return run(context.Background(), []string{"reset"})
	})
	if err != nil {
		t.Fatalf("reset command: %v", err)
	}
	if !strings.Contains(out, "removed 0 runs") {
		t.Fatalf("unexpected reset output: %s", out)
	}
}

func TestParseTriads(t *testing.T) {
	triads, err := parseTriads("paralum,paracava;parabrill, parascint ,paralum")
	if err != nil {
		t.Fatalf("parse triads: %v", err)
	}
	if len(triads) != 2 {
		t.Fatalf("expected two triads, got %d", len(triads))
	}
	if len(triads[1]) != 3 || triads[1][1] != "parascint" {
		t.Fatalf("unexpected second triad: %v", triads[1])
	}
}

func TestParseGradientsRejectsMissingKind(t *testing.T) {
	if _, err := parseGradients("0.1,0.2,0.3"); err == nil {
		t.Fatal("expected kind:weights format error")
	}
}

func captureStdout(fn func() error) (string, error) {
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	os.Stdout = w
	runErr := fn()
	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		_ = r.Close()
		return "", err
	}
	_ = r.Close()
	return buf.String(), runErr
}
