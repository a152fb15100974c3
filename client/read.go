package client

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pancake-db/pancake-core/compress"
	"github.com/pancake-db/pancake-core/deletion"
	"github.com/pancake-db/pancake-core/encoding"
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/field"
)

// DecodeIsDeleted reads and decompresses a segment's deletion bitmap under
// the given correlation ID. A missing or empty bitmap decodes to an empty
// vector, meaning nothing is deleted.
func (c *Client) DecodeIsDeleted(ctx context.Context, key *SegmentKey, correlationID string) ([]bool, error) {
	resp, err := c.ReadSegmentDeletions(ctx, &ReadSegmentDeletionsRequest{
		TableName:     key.TableName,
		SegmentID:     key.SegmentID,
		Partition:     key.Partition,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}

	return deletion.DecompressDeletions(resp.Data)
}

// DecodeSegmentColumn runs the iterative read loop for one column and
// returns its decoded values with the deletion bitmap applied.
//
// The loop accumulates the compressed and uncompressed regions across
// continuation chunks; the server may split a column into a compressed
// prefix, an implicit-null run, and an escape-framed suffix, and the decoded
// value order is exactly that.
func (c *Client) DecodeSegmentColumn(
	ctx context.Context,
	key *SegmentKey,
	columnName string,
	meta field.ColumnMeta,
	isDeleted []bool,
	correlationID string,
) ([]field.Value, error) {
	var (
		compressedBytes    []byte
		uncompressedBytes  []byte
		codec              string
		implicitNullsCount uint32
	)

	initialRequest := true
	continuationToken := ""
	for initialRequest || continuationToken != "" {
		resp, err := c.ReadSegmentColumn(ctx, &ReadSegmentColumnRequest{
			TableName:         key.TableName,
			SegmentID:         key.SegmentID,
			Partition:         key.Partition,
			ColumnName:        columnName,
			CorrelationID:     correlationID,
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, err
		}

		if resp.Codec == "" {
			uncompressedBytes = append(uncompressedBytes, resp.Data...)
		} else {
			if codec != "" && resp.Codec != codec {
				return nil, errs.Corrupt("codec changed from %s to %s across read responses", codec, resp.Codec)
			}
			compressedBytes = append(compressedBytes, resp.Data...)
			codec = resp.Codec
		}
		continuationToken = resp.ContinuationToken
		implicitNullsCount = resp.ImplicitNullsCount
		initialRequest = false
	}

	c.logger.Debug("read segment column",
		zap.String("column", columnName),
		zap.Int("compressed_bytes", len(compressedBytes)),
		zap.Int("uncompressed_bytes", len(uncompressedBytes)),
		zap.Uint32("implicit_nulls", implicitNullsCount),
	)

	res := make([]field.Value, 0)
	rowIdx := 0
	keep := func(v field.Value) {
		if rowIdx >= len(isDeleted) || !isDeleted[rowIdx] {
			res = append(res, v)
		}
		rowIdx++
	}

	if len(compressedBytes) > 0 {
		if implicitNullsCount > 0 {
			return nil, errs.Corrupt("contradictory read responses containing both compacted and implicit data")
		}

		decompressor, err := compress.NewValueCodec(meta.Dtype, codec)
		if err != nil {
			return nil, err
		}
		fvs, err := decompressor.Decompress(compressedBytes, meta.NestedListDepth)
		if err != nil {
			return nil, err
		}
		for _, fv := range fvs {
			keep(fv)
		}
	}

	for range implicitNullsCount {
		keep(field.Null())
	}

	if len(uncompressedBytes) > 0 {
		fvs, err := encoding.NewDecoder(meta.Dtype, meta.NestedListDepth).Decode(uncompressedBytes)
		if err != nil {
			return nil, err
		}
		for _, fv := range fvs {
			keep(fv)
		}
	}

	return res, nil
}

// DecodeSegment performs one logical segment read: it generates a fresh
// correlation ID, reads the deletion bitmap, runs every column's read loop,
// and joins the columns into rows.
//
// Column loops run concurrently up to the client's read concurrency. The
// row count is the minimum column length, which absorbs the skew two
// columns can show while the segment is being compacted.
func (c *Client) DecodeSegment(ctx context.Context, key *SegmentKey, columns map[string]field.ColumnMeta) ([]field.Row, error) {
	if len(columns) == 0 {
		return nil, errs.Invalid("unable to decode segment with no columns specified")
	}

	correlationID := NewCorrelationID()

	isDeleted, err := c.DecodeIsDeleted(ctx, key, correlationID)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	columnValues := make(map[string][]field.Value, len(columns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.readConcurrency)
	for name, meta := range columns {
		g.Go(func() error {
			fvs, err := c.DecodeSegmentColumn(gctx, key, name, meta, isDeleted, correlationID)
			if err != nil {
				return err
			}
			mu.Lock()
			columnValues[name] = fvs
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := -1
	for _, fvs := range columnValues {
		if n < 0 || len(fvs) < n {
			n = len(fvs)
		}
	}

	rows := make([]field.Row, n)
	for i := range rows {
		rows[i] = field.NewRow()
	}
	for name, fvs := range columnValues {
		for i := range n {
			rows[i].Fields[name] = fvs[i]
		}
	}

	return rows, nil
}
