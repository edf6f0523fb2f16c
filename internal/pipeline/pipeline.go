// internal/pipeline/pipeline.go
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"peptaxa-core/fasta"
	"peptaxa-core/peptide"
	"peptaxa-core/taxonomy"
	"peptaxa/internal/cache"
	"peptaxa/internal/config"
	"peptaxa/internal/logx"
	"peptaxa/internal/report"
	"peptaxa/internal/toolrun"
	"peptaxa/internal/workdir"
)

// Artifact names inside the assembly workspace.
const (
	TaxonomyFile = "taxonomy.tsv"
	ProteinFile  = "proteins.fasta"
	PeptideFile  = "peptides.txt"
	LCAFile      = "lca.csv"
	ReportFile   = "report.tsv"
)

// Options control one run.
type Options struct {
	Assembly string
	Force    bool
	Filter   peptide.Filter
	Rank     taxonomy.Rank
	Top      int
}

// Pipeline holds the collaborators for a run.
type Pipeline struct {
	Runner toolrun.Runner
	Tools  config.Tools
	Dir    *workdir.Dir
	Log    *logx.Logger
}

// step materializes out via fill unless a fresh copy exists and force is
// false. It reports whether the artifact was (re)generated.
func (p *Pipeline) step(name, out string, force bool, fill func(io.Writer) error) (bool, error) {
	if !force && cache.Fresh(out) {
		p.Log.Cached(name, out)
		return false, nil
	}
	done := p.Log.Step(name)
	defer done()
	if err := cache.Materialize(out, fill); err != nil {
		return false, fmt.Errorf("step %s: %w", name, err)
	}
	return true, nil
}

// Run executes the full pipeline and returns the aggregated statistics.
func (p *Pipeline) Run(ctx context.Context, opts Options) (report.Stats, error) {
	taxPath := p.Dir.Path(TaxonomyFile)
	protPath := p.Dir.Path(ProteinFile)
	peptPath := p.Dir.Path(PeptideFile)
	lcaPath := p.Dir.Path(LCAFile)

	// The two fetches only depend on the assembly ID; run them together.
	var protFresh bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := p.step("taxonomy", taxPath, opts.Force, func(w io.Writer) error {
			return p.Runner.Run(gctx, toolrun.Command{
				Argv:   config.Expand(p.Tools.Taxonomy, "{assembly}", opts.Assembly),
				Stdout: w,
			})
		})
		return err
	})
	g.Go(func() error {
		regen, err := p.step("proteins", protPath, opts.Force, func(w io.Writer) error {
			return p.Runner.Run(gctx, toolrun.Command{
				Argv:   config.Expand(p.Tools.Proteins, "{assembly}", opts.Assembly),
				Stdout: w,
			})
		})
		protFresh = regen
		return err
	})
	if err := g.Wait(); err != nil {
		return report.Stats{}, err
	}

	// Fragment + filter. A rebuilt upstream artifact invalidates the
	// cached downstream ones.
	var kept, dropped int
	peptFresh, err := p.step("peptides", peptPath, opts.Force || protFresh, func(w io.Writer) error {
		return p.fragment(ctx, protPath, opts.Filter, w, &kept, &dropped)
	})
	if err != nil {
		return report.Stats{}, err
	}
	if !peptFresh {
		if kept, err = countPeptides(peptPath); err != nil {
			return report.Stats{}, err
		}
	}

	if _, err := p.step("classify", lcaPath, opts.Force || peptFresh, func(w io.Writer) error {
		rc, err := fasta.Open(peptPath)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		return p.Runner.Run(ctx, toolrun.Command{
			Argv:   p.Tools.Classifier,
			Stdin:  rc,
			Stdout: w,
		})
	}); err != nil {
		return report.Stats{}, err
	}

	return p.aggregate(ctx, opts, taxPath, protPath, lcaPath, kept, dropped)
}

// fragment pipes the protein FASTA through the fragmenter tool and filters
// the resulting peptide stream on the way into w.
func (p *Pipeline) fragment(ctx context.Context, protPath string, filter peptide.Filter, w io.Writer, kept, dropped *int) error {
	rc, err := fasta.Open(protPath)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := p.Runner.Run(gctx, toolrun.Command{
			Argv:   p.Tools.Fragmenter,
			Stdin:  rc,
			Stdout: pw,
		})
		pw.CloseWithError(err)
		return err
	})
	g.Go(func() error {
		k, d, err := filter.Apply(pr, w)
		*kept, *dropped = k, d
		if err != nil {
			_ = pr.CloseWithError(err)
		}
		return err
	})
	return g.Wait()
}

// aggregate folds the cached artifacts into report.Stats.
func (p *Pipeline) aggregate(ctx context.Context, opts Options, taxPath, protPath, lcaPath string, kept, dropped int) (report.Stats, error) {
	b := report.NewBuilder(opts.Assembly)

	id, name, err := readTaxon(taxPath)
	if err != nil {
		return report.Stats{}, err
	}
	b.SetTaxon(id, name)

	proteins, _, err := fasta.Count(ctx, protPath)
	if err != nil {
		return report.Stats{}, err
	}
	b.SetCounts(proteins, kept, dropped)

	rc, err := fasta.Open(lcaPath)
	if err != nil {
		return report.Stats{}, err
	}
	defer func() { _ = rc.Close() }()
	if err := taxonomy.ReadTable(rc, func(a taxonomy.Assignment) error {
		b.Add(a)
		return nil
	}); err != nil {
		return report.Stats{}, err
	}

	return b.Stats(opts.Rank, opts.Top), nil
}

// readTaxon parses the taxonomy fetcher's output: a line of
// "taxid<TAB>name". Later lines and malformed leading lines are ignored
// so chatty fetchers don't break the run.
func readTaxon(path string) (int, string, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	for sc.Scan() {
		fields := strings.SplitN(strings.TrimSpace(sc.Text()), "\t", 2)
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		return id, name, nil
	}
	if err := sc.Err(); err != nil {
		return 0, "", err
	}
	return 0, "", fmt.Errorf("taxonomy: no taxid line in %s", path)
}

// countPeptides recounts a reused peptide artifact so statistics stay
// correct across cached runs.
func countPeptides(path string) (int, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()
	return peptide.CountLines(rc)
}
