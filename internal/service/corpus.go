package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"bayes-go/internal/util"

	"go.uber.org/zap"
)

// CorpusStats summarizes one TrainFromDirectory run
type CorpusStats struct {
	Files      int64            `json:"files"`
	Trained    int64            `json:"trained"`
	Categories map[string]int64 `json:"categories"` // samples trained per category
}

// CorpusTrainer bulk-trains a classifier from a labeled directory tree laid out as
// <root>/<category>/**/<sample>. Each file is one sample.
type CorpusTrainer struct {
	classifier   *Classifier
	logger       *zap.Logger
	numThreads   int
	maxFileBytes int64
}

func NewCorpusTrainer(classifier *Classifier, numThreads int, maxFileBytes int64, logger *zap.Logger) *CorpusTrainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CorpusTrainer{
		classifier:   classifier,
		logger:       logger,
		numThreads:   numThreads,
		maxFileBytes: maxFileBytes,
	}
}

// TrainFromDirectory trains every sample under root. Hidden files and directories,
// top-level files and directories with invalid category names are skipped.
func (ct *CorpusTrainer) TrainFromDirectory(ctx context.Context, root string) (*CorpusStats, error) {
	ct.logger.Info("Training from corpus", zap.String("root", root), zap.Int("threads", ct.numThreads))

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus %s is not a directory", root)
	}

	stats := &CorpusStats{Categories: make(map[string]int64)}
	var mu sync.Mutex

	files, err := util.WalkDirTree(ctx, root,
		func(ctx context.Context, path string) error {
			category := util.FirstPathElement(util.ToRelativePath(root, path))

			text, err := ct.readSample(path)
			if err != nil {
				return err
			}
			if err := ct.classifier.Train(category, text); err != nil {
				return err
			}

			mu.Lock()
			stats.Trained++
			stats.Categories[category]++
			trained := stats.Trained
			mu.Unlock()

			if trained%100 == 0 {
				ct.logger.Info("Corpus training progress", zap.Int64("files", trained))
			}
			return nil
		},
		func(path string, isDir bool) bool {
			if util.IsHidden(filepath.Base(path)) {
				return true
			}
			rel := util.ToRelativePath(root, path)
			if util.FirstPathElement(rel) != rel {
				return false
			}
			// top level: only category directories
			if !isDir {
				return true
			}
			if _, err := NormalizeCategory(rel); err != nil {
				ct.logger.Warn("Skipping directory with invalid category name", zap.String("dir", rel))
				return true
			}
			return false
		},
		ct.logger, ct.numThreads)

	stats.Files = files
	if err != nil {
		return stats, fmt.Errorf("failed to walk corpus: %w", err)
	}

	ct.logger.Info("Corpus training complete",
		zap.Int64("files", stats.Files),
		zap.Int64("trained", stats.Trained),
		zap.Int("categories", len(stats.Categories)))
	return stats, nil
}

func (ct *CorpusTrainer) readSample(path string) (string, error) {
	if ct.maxFileBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if info.Size() > ct.maxFileBytes {
			return "", fmt.Errorf("%w: %s is %d bytes", ErrPayloadTooLarge, path, info.Size())
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
