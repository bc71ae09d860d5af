package pipeline

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tallyup-dev/tallyup/internal/classify"
	"github.com/tallyup-dev/tallyup/internal/importer"
	"github.com/tallyup-dev/tallyup/internal/ledger"
	"github.com/tallyup-dev/tallyup/internal/merchant"
	"github.com/tallyup-dev/tallyup/internal/model"
	"github.com/tallyup-dev/tallyup/internal/rules"
	"github.com/tallyup-dev/tallyup/internal/schema"
)

// Pipeline wires the ingestion stages together: parse, categorize,
// classify flows, normalize merchants, merge into the ledger. Rule and
// alias stores are read once per run; the run works off that snapshot.
type Pipeline struct {
	source          rules.Source
	ledger          *ledger.Service
	defaultCurrency string
	log             zerolog.Logger
}

// New creates a Pipeline.
func New(source rules.Source, led *ledger.Service, defaultCurrency string, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		source:          source,
		ledger:          led,
		defaultCurrency: defaultCurrency,
		log:             log,
	}
}

// Result summarizes a run.
type Result struct {
	Accepted int // rows normalized from the input
	Skipped  int // rows rejected during normalization
	Merged   int // transactions actually added to the ledger
	Total    int // ledger size after the run
}

type snapshot struct {
	rules      []model.CategoryRule
	categories []model.Category
	aliases    []model.MerchantAlias
}

// ImportCSV runs the full pipeline over one CSV export and persists the
// merged collection. A nil mapping triggers template inference.
func (p *Pipeline) ImportCSV(r io.Reader, supplied *schema.Mapping) (Result, error) {
	snap, err := p.snapshot()
	if err != nil {
		return Result{}, err
	}

	txns, stats, err := importer.Parse(r, supplied, p.defaultCurrency)
	if err != nil {
		return Result{}, err
	}
	p.log.Debug().Int("accepted", stats.Accepted).Int("skipped", stats.Skipped).Msg("parsed CSV")

	enriched := p.enrich(txns, snap)
	return p.mergeAndSave(enriched, stats)
}

// ImportBackup merges a previously exported backup. Re-ingested
// transactions flow back through categorization before the merge.
func (p *Pipeline) ImportBackup(r io.Reader) (Result, error) {
	txns, err := ledger.ImportBackup(r)
	if err != nil {
		return Result{}, err
	}
	snap, err := p.snapshot()
	if err != nil {
		return Result{}, err
	}
	enriched := p.enrich(txns, snap)
	return p.mergeAndSave(enriched, importer.Stats{Accepted: len(txns)})
}

// Reclassify re-runs categorization, flow classification and merchant
// normalization over the stored collection, for use after rule or alias
// edits. Already-categorized transactions keep their category.
func (p *Pipeline) Reclassify() (int, error) {
	snap, err := p.snapshot()
	if err != nil {
		return 0, err
	}
	existing, err := p.ledger.Load()
	if err != nil {
		return 0, err
	}
	if len(existing) == 0 {
		return 0, nil
	}
	enriched := p.enrich(existing, snap)
	if err := p.ledger.Save(enriched); err != nil {
		return 0, err
	}
	return len(enriched), nil
}

// enrich runs the derivation stages in order. Identity is never touched.
func (p *Pipeline) enrich(txns []model.Transaction, snap snapshot) []model.Transaction {
	txns = classify.Categorize(txns, snap.rules, snap.categories)
	txns = classify.ClassifyFlows(txns)
	txns = merchant.Normalize(txns, snap.aliases)
	return txns
}

func (p *Pipeline) mergeAndSave(incoming []model.Transaction, stats importer.Stats) (Result, error) {
	existing, err := p.ledger.Load()
	if err != nil {
		return Result{}, err
	}
	merged := ledger.Merge(existing, incoming)
	if err := p.ledger.Save(merged); err != nil {
		return Result{}, err
	}
	res := Result{
		Accepted: stats.Accepted,
		Skipped:  stats.Skipped,
		Merged:   len(merged) - len(existing),
		Total:    len(merged),
	}
	p.log.Debug().Int("merged", res.Merged).Int("total", res.Total).Msg("ledger updated")
	return res, nil
}

// snapshot reads the rule and alias stores up front so a run never sees a
// partial store. If the store changes mid-run the run keeps its snapshot.
func (p *Pipeline) snapshot() (snapshot, error) {
	rls, err := p.source.ListEnabledCategoryRules()
	if err != nil {
		return snapshot{}, fmt.Errorf("reading category rules: %w", err)
	}
	cats, err := p.source.ListCategories()
	if err != nil {
		return snapshot{}, fmt.Errorf("reading categories: %w", err)
	}
	aliases, err := p.source.ListEnabledMerchantAliases()
	if err != nil {
		return snapshot{}, fmt.Errorf("reading merchant aliases: %w", err)
	}
	return snapshot{rules: rls, categories: cats, aliases: aliases}, nil
}
