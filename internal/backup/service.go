// Package backup writes a zip archive of the cache file after a
// successful run, so a bad cache can be rolled back by hand.
package backup

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

type Service struct {
	outputDir string
	logger    Logger
}

type Logger interface {
	Info(s string)
}

// New creates a backup service writing zip files to outputDir.
// An empty outputDir disables backups.
func New(outputDir string, logger Logger) *Service {
	return &Service{
		outputDir: outputDir,
		logger:    logger,
	}
}

func makeZipFileName() string {
	return "duiadns-backup-" + strconv.Itoa(int(time.Now().UnixNano())) + ".zip"
}

func (s *Service) Run(cacheFilepath string) (err error) {
	if s.outputDir == "" {
		return nil
	}

	outputFilepath := filepath.Join(s.outputDir, makeZipFileName())
	err = zipFiles(outputFilepath, cacheFilepath)
	if err != nil {
		return fmt.Errorf("zipping cache file: %w", err)
	}

	s.logger.Info("cache backed up to " + outputFilepath)
	return nil
}
