package core

import (
	"context"
	"errors"

	"github.com/nodewee/doc-to-json/pkg/types"
)

// BatchProcess runs ProcessFile over inputFiles sequentially, in order.
// A failed file never stops the batch; write failures are recorded as that
// file's error outcome and returned joined once every file has been tried.
func (p *DefaultFileProcessor) BatchProcess(ctx context.Context, inputFiles []string) (*types.BatchOutcome, error) {
	batch := types.NewBatchOutcome()
	var writeErrs []error

	for i, inputFile := range inputFiles {
		p.logger.Debug("Batch item %d/%d: %s", i+1, len(inputFiles), inputFile)

		outcome, err := p.ProcessFile(ctx, inputFile)
		if err != nil {
			writeErrs = append(writeErrs, err)
		}
		batch.Record(inputFile, outcome)
	}

	p.logger.Info("Batch processed %d files: %d successful, %d failed", batch.TotalFiles, batch.Successful, batch.Failed)
	return batch, errors.Join(writeErrs...)
}
