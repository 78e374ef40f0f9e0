package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mjambon/martinj/config"
	"github.com/mjambon/martinj/internal/domain/works"
	"github.com/mjambon/martinj/internal/images"
	"github.com/mjambon/martinj/internal/render"
	"github.com/mjambon/martinj/internal/store"
)

var force bool

var rootCmd = &cobra.Command{
	Use:   "martinj",
	Short: "Build the gallery site",
	Long: `Reads the artwork and series tables, refreshes stale image
variants through ImageMagick, and writes the static HTML tree.

Any inconsistency in the data or any failing tool invocation stops the
build with a nonzero exit status.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&force, "force", false,
		"rebuild every derived image regardless of timestamps")
}

func run(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfgPath := os.Getenv("MARTINJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "site.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	artRows, err := store.ReadTable(filepath.Join(cfg.DataDir, "artworks.csv"))
	if err != nil {
		return err
	}
	serRows, err := store.ReadTable(filepath.Join(cfg.DataDir, "series.csv"))
	if err != nil {
		return err
	}

	artworks, err := works.ParseArtworks(artRows, cfg.ValidTags)
	if err != nil {
		return err
	}
	series, err := works.ParseSeries(serRows)
	if err != nil {
		return err
	}

	pipe := images.NewPipeline(cfg.OriginalsDir, cfg.OutDir, force, logger)
	site, err := render.NewSite(cfg, logger, pipe, artworks, series)
	if err != nil {
		return err
	}
	if err := site.Build(); err != nil {
		return err
	}

	logger.Info("site built",
		zap.Int("artworks", len(artworks)),
		zap.Int("series", len(series)),
		zap.String("out", cfg.OutDir))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "martinj:", err)
		os.Exit(1)
	}
}
