package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/viant/vec-outliers/config"
	"github.com/viant/vec-outliers/index"
	"github.com/viant/vec-outliers/index/bruteforce"
	"github.com/viant/vec-outliers/index/hnsw"
	"github.com/viant/vec-outliers/index/vptree"
	"github.com/viant/vec-outliers/outlier"
	"github.com/viant/vec-outliers/store"
	"github.com/viant/vec-outliers/vector"
)

var (
	setFlag = &cli.StringFlag{
		Name:     "set",
		Usage:    "Name of the embedding set",
		Required: true,
	}
	fileFlag = &cli.StringFlag{
		Name:     "file",
		Usage:    "Path to a CSV file of float rows",
		Required: true,
	}
	kFlag = &cli.IntFlag{
		Name:  "k",
		Usage: "Neighbor count (overrides config)",
	}
	metricFlag = &cli.StringFlag{
		Name:  "metric",
		Usage: "Distance metric: cosine or euclidean (overrides config)",
	}
	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Index backend: brute, vptree, or hnsw (overrides config)",
	}
	percentileFlag = &cli.Float64Flag{
		Name:  "percentile",
		Usage: "Calibration percentile in [0,100] (overrides config)",
	}
	referenceFlag = &cli.StringFlag{
		Name:     "reference",
		Usage:    "Name of the trusted reference set",
		Required: true,
	}
	queriesFlag = &cli.StringFlag{
		Name:     "queries",
		Usage:    "Name of the query set to classify",
		Required: true,
	}

	ingestCmd = &cli.Command{
		Name:   "ingest",
		Usage:  "Load a CSV file of embeddings into the store as a named set",
		Flags:  []cli.Flag{setFlag, fileFlag},
		Action: runIngest,
	}
	scoreCmd = &cli.Command{
		Name:   "score",
		Usage:  "Self-score a stored set and print per-row outlier scores",
		Flags:  []cli.Flag{setFlag, kFlag, metricFlag, backendFlag},
		Action: runScore,
	}
	detectCmd = &cli.Command{
		Name:   "detect",
		Usage:  "Calibrate on a reference set and flag outliers in a query set",
		Flags:  []cli.Flag{referenceFlag, queriesFlag, kFlag, metricFlag, backendFlag, percentileFlag},
		Action: runDetect,
	}
	setsCmd = &cli.Command{
		Name:   "sets",
		Usage:  "List stored embedding sets",
		Action: runSets,
	}
)

// applyScoringFlags folds per-command flag overrides into the config.
func applyScoringFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet(kFlag.Name) {
		cfg.Scoring.K = c.Int(kFlag.Name)
	}
	if c.IsSet(metricFlag.Name) {
		cfg.Scoring.Metric = c.String(metricFlag.Name)
	}
	if c.IsSet(backendFlag.Name) {
		cfg.Scoring.Backend = c.String(backendFlag.Name)
	}
	if c.IsSet(percentileFlag.Name) {
		cfg.Scoring.Percentile = c.Float64(percentileFlag.Name)
	}
}

func backendFor(name string) (index.Index, error) {
	switch name {
	case "brute":
		return &bruteforce.Index{}, nil
	case "vptree":
		return &vptree.Index{}, nil
	case "hnsw":
		return &hnsw.Index{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func scorerOptions(cfg *config.Config) ([]outlier.Option, error) {
	backend, err := backendFor(cfg.Scoring.Backend)
	if err != nil {
		return nil, err
	}
	opts := []outlier.Option{
		outlier.WithK(cfg.Scoring.K),
		outlier.WithMetric(vector.Metric(cfg.Scoring.Metric)),
		outlier.WithBackend(backend),
	}
	if cfg.Scoring.Parallelism > 0 {
		opts = append(opts, outlier.WithParallelism(cfg.Scoring.Parallelism))
	}
	return opts, nil
}

func openStore(cfg *config.Config) (*store.Store, func(), error) {
	db, err := store.Open(cfg.Store.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, func() { _ = db.Close() }, nil
}

func runIngest(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	m, err := readCSVMatrix(c.String(fileFlag.Name))
	if err != nil {
		return err
	}
	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	setName := c.String(setFlag.Name)
	if err := s.SaveSet(c.Context, setName, m); err != nil {
		return err
	}
	logger.Info("ingested embedding set",
		zap.String("set", setName),
		zap.Int("rows", m.Len()),
		zap.Int("dim", m.Dim()),
		zap.String("db", cfg.Store.DatabasePath))
	return nil
}

func runScore(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyScoringFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	setName := c.String(setFlag.Name)
	m, err := s.LoadSet(c.Context, setName)
	if err != nil {
		return err
	}
	opts, err := scorerOptions(cfg)
	if err != nil {
		return err
	}
	scores, err := outlier.SelfScore(m, opts...)
	if err != nil {
		return err
	}
	logger.Debug("self-scored set",
		zap.String("set", setName),
		zap.Int("rows", m.Len()),
		zap.Int("k", cfg.Scoring.K),
		zap.String("metric", cfg.Scoring.Metric))

	fmt.Fprintln(c.App.Writer, "row,score")
	for i, score := range scores {
		fmt.Fprintf(c.App.Writer, "%d,%g\n", i, score)
	}
	return nil
}

func runDetect(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	applyScoringFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reference, err := s.LoadSet(c.Context, c.String(referenceFlag.Name))
	if err != nil {
		return err
	}
	queries, err := s.LoadSet(c.Context, c.String(queriesFlag.Name))
	if err != nil {
		return err
	}
	opts, err := scorerOptions(cfg)
	if err != nil {
		return err
	}
	detector, err := outlier.Fit(reference, cfg.Scoring.Percentile, opts...)
	if err != nil {
		return err
	}
	scores, flags, err := detector.Detect(queries)
	if err != nil {
		return err
	}
	logger.Info("calibrated detector",
		zap.String("reference", c.String(referenceFlag.Name)),
		zap.Float64("percentile", cfg.Scoring.Percentile),
		zap.Float64("threshold", detector.Threshold()))

	fmt.Fprintln(c.App.Writer, "row,score,outlier")
	for i, score := range scores {
		fmt.Fprintf(c.App.Writer, "%d,%g,%t\n", i, score, flags[i])
	}
	return nil
}

func runSets(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	s, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sets, err := s.ListSets(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "set,rows")
	for _, name := range sortedKeys(sets) {
		fmt.Fprintf(c.App.Writer, "%s,%d\n", name, sets[name])
	}
	return nil
}
