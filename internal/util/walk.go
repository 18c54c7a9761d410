package util

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// WalkFunc is called once per regular file
type WalkFunc func(ctx context.Context, path string) error

// SkipFunc reports whether a path should be skipped. Skipping a directory skips its subtree.
type SkipFunc func(path string, isDir bool) bool

// WalkDirTree walks root and hands every regular file to walkFn on numThreads workers.
// Errors from walkFn are logged and do not stop the walk. It returns the number of
// files handed to walkFn.
func WalkDirTree(ctx context.Context, root string, walkFn WalkFunc, skipPath SkipFunc, logger *zap.Logger, numThreads int) (int64, error) {
	if numThreads < 1 {
		numThreads = 1
	}

	var processed atomic.Int64
	workQueue := make(chan string, numThreads)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numThreads; i++ {
		g.Go(func() error {
			for path := range workQueue {
				processed.Add(1)
				if err := walkFn(gctx, path); err != nil {
					logger.Error("WalkDirTree - Failed to process file", zap.String("path", path), zap.Error(err))
				}
			}
			return nil
		})
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && skipPath != nil && skipPath(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		select {
		case workQueue <- path:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})
	close(workQueue)

	if err := g.Wait(); err != nil && walkErr == nil {
		walkErr = err
	}
	return processed.Load(), walkErr
}
