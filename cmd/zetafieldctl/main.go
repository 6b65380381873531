package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"zetafield/internal/sediment"
	"zetafield/internal/storage"
	"zetafield/internal/viz"
	zetaapi "zetafield/pkg/zetafield"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "drift":
		return runDrift(ctx, args[1:])
	case "fractal":
		return runFractal(ctx, args[1:])
	case "spiral":
		return runSpiral(ctx, args[1:])
	case "helix":
		return runHelix(ctx, args[1:])
	case "sediment":
		return runSediment(ctx, args[1:])
	case "curvature":
		return runCurvature(ctx, args[1:])
	case "detect":
		return runDetect(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "delete":
		return runDelete(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func storeFlags(fs *flag.FlagSet) (storeKind, dbPath, exportsDir *string) {
	storeKind = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db-path", "zetafield.db", "sqlite database path")
	exportsDir = fs.String("exports-dir", "exports", "run artifacts directory")
	return storeKind, dbPath, exportsDir
}

func newClient(storeKind, dbPath, exportsDir string) (*zetaapi.Client, error) {
	return zetaapi.New(zetaapi.Options{
		StoreKind:  storeKind,
		DBPath:     dbPath,
		ExportsDir: exportsDir,
	})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	removed, err := client.Reset(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("removed %d runs\n", removed)
	return nil
}

func runDrift(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("drift", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	triadsFlag := fs.String("triads", "", "semicolon-separated triads, comma-separated labels (e.g. paralum,paracava,parabrill;parabrill,parascint,paralum)")
	plot := fs.Bool("plot", false, "render the XY trajectory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	triads, err := parseTriads(*triadsFlag)
	if err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := client.RunDrift(ctx, zetaapi.DriftRequest{Triads: triads})
	if err != nil {
		return err
	}

	fmt.Printf("run=%s steps=%d\n", summary.RunID, len(summary.Trajectory))
	for i, pos := range summary.Trajectory {
		fmt.Printf("step %d: xy=(%.3f, %.3f) zeta=%.3f zeta'=%.3f zeta*=(%.3f, %.3f) |zeta*|=%.3f\n",
			i+1, pos.X, pos.Y, pos.Zeta, pos.ZetaPrime,
			pos.ZetaStar.X, pos.ZetaStar.Y, pos.ZetaStarMagnitude)
	}
	if *plot {
		fmt.Println()
		fmt.Print(viz.Trajectory(summary.Trajectory))
	}
	return nil
}

func runFractal(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fractal", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	x := fs.Float64("x", 1.0, "root x coordinate")
	y := fs.Float64("y", 0.5, "root y coordinate")
	tokensFlag := fs.String("tokens", "triad,triad,extend,triad,alternate,triad", "comma-separated token kinds")
	samplesFlag := fs.String("samples", "0.1,0.3,0.5,0.2,0.4,0.6,0.15,0.35,0.55", "comma-separated sample pattern")
	maxDepth := fs.Int("max-depth", 5, "maximum subdivision depth")
	if err := fs.Parse(args); err != nil {
		return err
	}

	samples, err := parseFloats(*samplesFlag)
	if err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := client.BuildFractal(ctx, zetaapi.FractalRequest{
		X:        *x,
		Y:        *y,
		Tokens:   splitList(*tokensFlag),
		Samples:  samples,
		MaxDepth: *maxDepth,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run=%s zeta=%.4f zeta'=%.4f levels=%d\n",
		summary.RunID, summary.Zeta, summary.ZetaPrime, len(summary.Levels))
	fmt.Print(viz.Descent(summary.Levels))
	return nil
}

func runSpiral(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("spiral", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	gradientsFlag := fs.String("gradients", "vertical:0.8,0.5,0.6", "semicolon-separated gradients as kind:w1,w2,... (kinds: vertical|lateral|diagonal)")
	steps := fs.Int("steps", 5, "steps per gradient")
	timeStep := fs.Float64("dt", 0.2, "time step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	specs, err := parseGradients(*gradientsFlag)
	if err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := client.RunSpiral(ctx, zetaapi.SpiralRequest{
		Gradients:     specs,
		StepsPerGrade: *steps,
		TimeStep:      *timeStep,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run=%s altitude=%.4f irreversible=%v\n",
		summary.RunID, summary.Altitude, summary.Irreversible)
	for _, gradient := range summary.Gradients {
		fmt.Printf("gradient %s: magnitude=%.3f operators=%v\n",
			gradient.Kind, gradient.Magnitude, gradient.Operators)
	}
	last := summary.Path[len(summary.Path)-1]
	fmt.Printf("final position: (%.3f, %.3f, zeta=%.3f)\n", last.X, last.Y, last.Zeta)
	return nil
}

func runHelix(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("helix", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	gradientFlag := fs.String("gradient", "vertical:0.8,0.5,0.6", "gradient as kind:w1,w2,...")
	revolutions := fs.Float64("revolutions", 2.0, "number of revolutions")
	perRev := fs.Int("points-per-revolution", 36, "samples per revolution")
	if err := fs.Parse(args); err != nil {
		return err
	}

	specs, err := parseGradients(*gradientFlag)
	if err != nil {
		return err
	}
	if len(specs) != 1 {
		return fmt.Errorf("helix takes exactly one gradient")
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := client.Helix(ctx, zetaapi.HelixRequest{
		Gradient:            specs[0],
		Revolutions:         *revolutions,
		PointsPerRevolution: *perRev,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run=%s gradient=%s magnitude=%.3f points=%d\n",
		summary.RunID, summary.Gradient.Kind, summary.Gradient.Magnitude, len(summary.Path))
	if len(summary.Path) > 0 {
		first := summary.Path[0]
		last := summary.Path[len(summary.Path)-1]
		fmt.Printf("start: (%.2f, %.2f, zeta=%.3f)\n", first.X, first.Y, first.Zeta)
		fmt.Printf("end:   (%.2f, %.2f, zeta=%.3f)\n", last.X, last.Y, last.Zeta)
	}
	return nil
}

func runSediment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sediment", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	steps := fs.Int("steps", 5, "steps per phase")
	timeStep := fs.Float64("dt", 0.2, "time step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	// Two canonical phases: fast operators first, then the settling.
	summary, err := client.RunSediment(ctx, zetaapi.SedimentRequest{
		TimeStep: *timeStep,
		Phases: []zetaapi.SedimentPhase{
			{Inputs: sediment.Inputs{Parabrill: 0.8, Parascint: 0.7, Paracava: 0.3, Paraflu: 0.2, Paralum: 0.4}, Steps: *steps},
			{Inputs: sediment.Inputs{Parabrill: 0.3, Parascint: 0.2, Paracava: 0.8, Paraflu: 0.7, Paralum: 0.2}, Steps: *steps},
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("run=%s steps=%d\n", summary.RunID, len(summary.Positions))
	for _, pos := range summary.Positions {
		fmt.Printf("step %d: xy=(%.3f, %.3f) zeta=%.3f zeta'=%.3f\n",
			pos.Step+1, pos.X, pos.Y, pos.Zeta, pos.ZetaPrime)
	}
	fmt.Printf("final zeta=%.3f zeta'=%.3f coherence=%.3f\n",
		summary.Final.Zeta, summary.Final.ZetaPrime, summary.TotalCoherence)
	return nil
}

func runCurvature(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("curvature", flag.ContinueOnError)
	tokensFlag := fs.String("tokens", "", "comma-separated token kinds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient("memory", "", "")
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	value, err := client.Curvature(splitList(*tokensFlag))
	if err != nil {
		return err
	}
	fmt.Printf("curvature=%.4f\n", value)
	return nil
}

func runDetect(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	samplesFlag := fs.String("samples", "", "comma-separated sample pattern")
	windows := fs.Int("windows", 3, "number of comparison windows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	samples, err := parseFloats(*samplesFlag)
	if err != nil {
		return err
	}

	client, err := newClient("memory", "", "")
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	has, score := client.Detect(samples, *windows)
	fmt.Printf("self-similar=%v score=%.4f\n", has, score)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	limit := fs.Int("limit", 20, "max runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	runs, err := client.Runs(ctx)
	if err != nil {
		return err
	}
	if *limit > 0 && len(runs) > *limit {
		runs = runs[:*limit]
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, item := range runs {
		fmt.Printf("%s kind=%s created=%s steps=%d final-zeta=%.4f\n",
			item.RunID, item.Kind, item.CreatedAtUTC, item.Steps, item.FinalZeta)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	runID := fs.String("run", "", "run id to export")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("export requires -run")
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	dir, err := client.Export(ctx, *runID)
	if err != nil {
		return err
	}
	fmt.Printf("exported %s to %s\n", *runID, dir)
	return nil
}

func runDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	storeKind, dbPath, exportsDir := storeFlags(fs)
	runID := fs.String("run", "", "run id to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("delete requires -run")
	}

	client, err := newClient(*storeKind, *dbPath, *exportsDir)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Delete(ctx, *runID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", *runID)
	return nil
}

func parseTriads(value string) ([][]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("drift requires -triads")
	}
	var triads [][]string
	for _, group := range strings.Split(value, ";") {
		labels := splitList(group)
		if len(labels) == 0 {
			continue
		}
		triads = append(triads, labels)
	}
	if len(triads) == 0 {
		return nil, fmt.Errorf("no triads in %q", value)
	}
	return triads, nil
}

func parseGradients(value string) ([]zetaapi.GradientSpec, error) {
	var specs []zetaapi.GradientSpec
	for _, group := range strings.Split(value, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		kind, weightsPart, ok := strings.Cut(group, ":")
		if !ok {
			return nil, fmt.Errorf("gradient %q must be kind:w1,w2,...", group)
		}
		weights, err := parseFloats(weightsPart)
		if err != nil {
			return nil, err
		}
		specs = append(specs, zetaapi.GradientSpec{Kind: strings.TrimSpace(kind), Weights: weights})
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no gradients in %q", value)
	}
	return specs, nil
}

func parseFloats(value string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(value) {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: zetafieldctl <init|reset|drift|fractal|spiral|helix|sediment|curvature|detect|runs|export|delete> [flags]", msg)
}
