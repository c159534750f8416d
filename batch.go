package tex2img

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Failure records why one record produced no output.
type Failure struct {
	ID    string
	Index int
	Err   error
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Outputs  []string     // written files, in input order
	Failures []Failure    // records that produced no output
	Skipped  []EntryIssue // entries rejected before conversion
	Elapsed  time.Duration
}

// Processed returns the number of records attempted.
func (r *BatchResult) Processed() int {
	return len(r.Outputs) + len(r.Failures)
}

// ConvertRecords converts records one after another. A failing record is
// recorded in Failures and the batch moves on; no error escapes.
func (c *Converter) ConvertRecords(ctx context.Context, records []Record) *BatchResult {
	start := time.Now()
	res := &BatchResult{}

	for _, rec := range records {
		out, err := c.convertOne(ctx, rec)
		if err != nil {
			id := rec.ID
			var recErr *RecordError
			if errors.As(err, &recErr) {
				id = recErr.ID
			}
			res.Failures = append(res.Failures, Failure{ID: id, Index: rec.Index, Err: err})
			continue
		}
		res.Outputs = append(res.Outputs, out)
	}

	res.Elapsed = time.Since(start)
	c.logger.Info("batch finished",
		zap.Int("succeeded", len(res.Outputs)),
		zap.Int("failed", len(res.Failures)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res
}

// convertOne shields the batch from a panicking record.
func (c *Converter) convertOne(ctx context.Context, rec Record) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return c.Convert(ctx, rec)
}

// ConvertCollection normalizes col and converts its records. Entries that
// cannot become records are reported in Skipped.
func (c *Converter) ConvertCollection(ctx context.Context, col *Collection) *BatchResult {
	records, issues := col.Records()
	for _, issue := range issues {
		c.logger.Info("skipping entry",
			zap.String("kind", issue.Kind.String()),
			zap.Int("index", issue.Index),
			zap.String("reason", issue.Reason),
		)
	}

	res := c.ConvertRecords(ctx, records)
	res.Skipped = issues
	return res
}

// ConvertFile loads the collection at path and converts it. Structural
// input errors are returned before any external program runs.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*BatchResult, error) {
	col, err := LoadCollection(path)
	if err != nil {
		return nil, err
	}
	return c.ConvertCollection(ctx, col), nil
}
