package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waylens/terminal/internal/index"
	"github.com/waylens/terminal/internal/ingest"
	"github.com/waylens/terminal/internal/store"
)

var (
	ingestDir      string
	ingestOut      string
	ingestNoRecord bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the company dataset snapshot from CSV/XLSX sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		dir := ingestDir
		if dir == "" {
			dir = cfg.Data.Dir
		}
		out := ingestOut
		if out == "" {
			out = cfg.Data.SnapshotPath
		}

		started := time.Now()
		pipeline := ingest.NewPipeline(dir)
		summary, err := pipeline.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "ingest")
		}

		snap, err := index.Export(pipeline.Entities(), out)
		if err != nil {
			return eris.Wrap(err, "ingest: export")
		}

		zap.L().Info("snapshot exported",
			zap.String("path", out),
			zap.Int("companies", snap.Metadata.TotalCompanies),
			zap.Int("files", summary.FilesProcessed),
			zap.Int("failed", summary.FilesFailed),
		)

		if ingestNoRecord {
			return nil
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run := &store.IngestRun{
			ID:             uuid.New().String(),
			StartedAt:      started,
			FinishedAt:     time.Now(),
			FilesProcessed: summary.FilesProcessed,
			FilesFailed:    summary.FilesFailed,
			Companies:      summary.Companies,
			SnapshotPath:   out,
		}
		if err := st.RecordRun(ctx, run); err != nil {
			return err
		}

		zap.L().Info("ingest run recorded", zap.String("run_id", run.ID))
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDir, "dir", "", "source directory (default from config)")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "", "snapshot output path (default from config)")
	ingestCmd.Flags().BoolVar(&ingestNoRecord, "no-record", false, "skip writing the run log")
	rootCmd.AddCommand(ingestCmd)
}
