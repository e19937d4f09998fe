package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waylens/terminal/internal/fileindex"
)

var (
	fileindexDir string
	fileindexOut string
)

var fileindexCmd = &cobra.Command{
	Use:   "fileindex",
	Short: "Build the CSV file-metadata index",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir := fileindexDir
		if dir == "" {
			dir = cfg.Data.Dir
		}
		out := fileindexOut
		if out == "" {
			out = cfg.Data.FileIndexPath
		}

		vocab := fileindex.DefaultVocab()
		if cfg.Data.VocabPath != "" {
			v, err := fileindex.LoadVocab(cfg.Data.VocabPath)
			if err != nil {
				return eris.Wrap(err, "fileindex: load vocab")
			}
			vocab = v
		}

		snap, err := fileindex.NewIndexer(vocab).BuildIndex(dir)
		if err != nil {
			return eris.Wrap(err, "fileindex")
		}
		if err := fileindex.ExportIndex(snap, out); err != nil {
			return eris.Wrap(err, "fileindex: export")
		}

		zap.L().Info("file index exported",
			zap.String("path", out),
			zap.Int("files", len(snap.Files)),
		)
		return nil
	},
}

func init() {
	fileindexCmd.Flags().StringVar(&fileindexDir, "dir", "", "source directory (default from config)")
	fileindexCmd.Flags().StringVar(&fileindexOut, "out", "", "index output path (default from config)")
	rootCmd.AddCommand(fileindexCmd)
}
