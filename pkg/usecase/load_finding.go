package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/gdstation/pkg/domain/model"
	"github.com/m-mizutani/gdstation/pkg/utils/safe"
)

// LoadFinding loads a finding event from an io.Reader
func LoadFinding(ctx context.Context, r io.Reader) (model.Finding, error) {
	finding, err := model.DecodeFinding(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load finding")
	}
	return finding, nil
}

// LoadFindingFromFile loads a finding event from a file. "-" reads stdin.
func LoadFindingFromFile(ctx context.Context, filePath string) (model.Finding, error) {
	if filePath == "-" {
		return LoadFinding(ctx, os.Stdin)
	}

	fd, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open finding file", goerr.V("path", filePath))
	}
	defer safe.Close(fd)

	return LoadFinding(ctx, fd)
}
