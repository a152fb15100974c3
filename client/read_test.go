package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pancake-db/pancake-core/compress"
	"github.com/pancake-db/pancake-core/deletion"
	"github.com/pancake-db/pancake-core/encoding"
	"github.com/pancake-db/pancake-core/errs"
	"github.com/pancake-db/pancake-core/field"
	"github.com/pancake-db/pancake-core/format"
)

// fakeTransport scripts server behavior per endpoint. Handlers run
// concurrently when DecodeSegment fans out over columns.
type fakeTransport struct {
	t        *testing.T
	handlers map[string]func(body []byte) (int, []byte)

	mu        sync.Mutex
	endpoints []string
}

func (f *fakeTransport) Do(_ context.Context, _, endpoint string, body []byte) (int, []byte, error) {
	f.mu.Lock()
	f.endpoints = append(f.endpoints, endpoint)
	handler, ok := f.handlers[endpoint]
	f.mu.Unlock()
	if !ok {
		f.t.Fatalf("unexpected request to endpoint %q", endpoint)
	}
	status, resp := handler(body)

	return status, resp, nil
}

func (f *fakeTransport) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.endpoints {
		if e == endpoint {
			n++
		}
	}

	return n
}

func newFakeClient(t *testing.T, handlers map[string]func([]byte) (int, []byte)) (*Client, *fakeTransport) {
	t.Helper()

	ft := &fakeTransport{t: t, handlers: handlers}
	c, err := New("http://fake", WithTransport(ft))
	require.NoError(t, err)

	return c, ft
}

// hybridBody builds a streaming-read response body: the JSON prefix, the
// delimiter, then the raw data region.
func hybridBody(t *testing.T, resp any, data []byte) []byte {
	t.Helper()

	prefix, err := json.Marshal(resp)
	require.NoError(t, err)

	body := append(prefix, '\n')

	return append(body, data...)
}

// deletionsHandler serves the same compressed bitmap for every request.
func deletionsHandler(t *testing.T, data []byte) func([]byte) (int, []byte) {
	return func([]byte) (int, []byte) {
		return 200, hybridBody(t, &ReadSegmentDeletionsResponse{}, data)
	}
}

// columnReadHandler serves scripted chunk sequences per column and verifies
// the continuation-token chain.
func columnReadHandler(t *testing.T, chunksByColumn map[string][]ReadSegmentColumnResponse) func([]byte) (int, []byte) {
	var mu sync.Mutex
	progress := make(map[string]int)
	correlationIDs := make(map[string]struct{})

	return func(body []byte) (int, []byte) {
		var req ReadSegmentColumnRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.NotEmpty(t, req.CorrelationID)

		mu.Lock()
		defer mu.Unlock()
		correlationIDs[req.CorrelationID] = struct{}{}
		require.Len(t, correlationIDs, 1, "correlation ID changed within one segment read")

		chunks, ok := chunksByColumn[req.ColumnName]
		require.True(t, ok, "read for unknown column %q", req.ColumnName)
		i := progress[req.ColumnName]
		require.Less(t, i, len(chunks), "read past the final continuation token for %q", req.ColumnName)
		if i == 0 {
			require.Empty(t, req.ContinuationToken)
		} else {
			require.Equal(t, chunks[i-1].ContinuationToken, req.ContinuationToken)
		}
		progress[req.ColumnName] = i + 1

		resp := chunks[i]

		return 200, hybridBody(t, &resp, resp.Data)
	}
}

func compressValues(t *testing.T, values []field.Value, dt format.DataType, depth uint8) []byte {
	t.Helper()

	codec, err := compress.NewValueCodec(dt, compress.ChooseCodec(dt))
	require.NoError(t, err)
	payload, err := codec.Compress(values, depth)
	require.NoError(t, err)

	return payload
}

func escapeValues(t *testing.T, values []field.Value, dt format.DataType, depth uint8) []byte {
	t.Helper()

	encoded, err := encoding.NewEncoder(dt, depth).Encode(values)
	require.NoError(t, err)

	return encoded
}

func int64Meta() field.ColumnMeta {
	return field.ColumnMeta{Dtype: format.Int64}
}

func segKey() *SegmentKey {
	return &SegmentKey{TableName: "events", SegmentID: "seg_0"}
}

func TestDecodeSegmentColumn_CompressedThenUncompressed(t *testing.T) {
	compressed := compressValues(t, []field.Value{field.Int64Value(1), field.Int64Value(2)}, format.Int64, 0)
	uncompressed := escapeValues(t, []field.Value{field.Int64Value(3), field.Null()}, format.Int64, 0)

	c, ft := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {
				{Codec: format.CodecQ, Data: compressed, ContinuationToken: "t1"},
				{Codec: "", Data: uncompressed, ContinuationToken: ""},
			},
		}),
	})

	values, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), nil, NewCorrelationID())
	require.NoError(t, err)

	require.Len(t, values, 4)
	require.True(t, values[0].Equal(field.Int64Value(1)))
	require.True(t, values[1].Equal(field.Int64Value(2)))
	require.True(t, values[2].Equal(field.Int64Value(3)))
	require.True(t, values[3].IsNull())

	// the empty token ended the loop after exactly two requests
	require.Equal(t, 2, ft.count("read_segment_column"))
}

func TestDecodeSegmentColumn_ChunkedCompressedRegion(t *testing.T) {
	compressed := compressValues(t, []field.Value{field.Int64Value(10), field.Int64Value(20)}, format.Int64, 0)
	half := len(compressed) / 2

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {
				{Codec: format.CodecQ, Data: compressed[:half], ContinuationToken: "t1"},
				{Codec: format.CodecQ, Data: compressed[half:], ContinuationToken: ""},
			},
		}),
	})

	values, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), nil, NewCorrelationID())
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.True(t, values[0].Equal(field.Int64Value(10)))
	require.True(t, values[1].Equal(field.Int64Value(20)))
}

func TestDecodeSegmentColumn_ImplicitNullsBeforeUncompressed(t *testing.T) {
	uncompressed := escapeValues(t, []field.Value{field.Int64Value(5)}, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {
				{Codec: "", Data: uncompressed, ImplicitNullsCount: 2, ContinuationToken: ""},
			},
		}),
	})

	values, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), nil, NewCorrelationID())
	require.NoError(t, err)

	require.Len(t, values, 3)
	require.True(t, values[0].IsNull())
	require.True(t, values[1].IsNull())
	require.True(t, values[2].Equal(field.Int64Value(5)))
}

func TestDecodeSegmentColumn_CompressedWithImplicitNullsIsCorrupt(t *testing.T) {
	compressed := compressValues(t, []field.Value{field.Int64Value(1)}, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {
				{Codec: format.CodecQ, Data: compressed, ImplicitNullsCount: 3, ContinuationToken: ""},
			},
		}),
	})

	_, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), nil, NewCorrelationID())
	require.ErrorIs(t, err, errs.ErrCorrupt)
	require.ErrorContains(t, err, "contradictory read responses containing both compacted and implicit data")
}

func TestDecodeSegmentColumn_CodecChangeIsCorrupt(t *testing.T) {
	compressed := compressValues(t, []field.Value{field.Int64Value(1)}, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {
				{Codec: format.CodecQ, Data: compressed, ContinuationToken: "t1"},
				{Codec: format.CodecZ, Data: compressed, ContinuationToken: ""},
			},
		}),
	})

	_, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), nil, NewCorrelationID())
	require.ErrorIs(t, err, errs.ErrCorrupt)
}

func TestDecodeSegmentColumn_DeletionApplication(t *testing.T) {
	values := []field.Value{
		field.Int64Value(0),
		field.Int64Value(1),
		field.Int64Value(2),
		field.Int64Value(3),
		field.Int64Value(4),
	}
	uncompressed := escapeValues(t, values, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {{Codec: "", Data: uncompressed, ContinuationToken: ""}},
		}),
	})

	isDeleted := []bool{false, true, false, false, true}
	got, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), isDeleted, NewCorrelationID())
	require.NoError(t, err)

	require.Len(t, got, 3)
	require.True(t, got[0].Equal(field.Int64Value(0)))
	require.True(t, got[1].Equal(field.Int64Value(2)))
	require.True(t, got[2].Equal(field.Int64Value(3)))
}

func TestDecodeSegmentColumn_ShortDeletionVectorKeepsTail(t *testing.T) {
	values := []field.Value{field.Int64Value(0), field.Int64Value(1), field.Int64Value(2)}
	uncompressed := escapeValues(t, values, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {{Codec: "", Data: uncompressed, ContinuationToken: ""}},
		}),
	})

	// rows past the end of the bitmap are retained
	got, err := c.DecodeSegmentColumn(context.Background(), segKey(), "col_0", int64Meta(), []bool{true}, NewCorrelationID())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].Equal(field.Int64Value(1)))
	require.True(t, got[1].Equal(field.Int64Value(2)))
}

func TestDecodeSegment_NoColumns(t *testing.T) {
	c, _ := newFakeClient(t, nil)

	_, err := c.DecodeSegment(context.Background(), segKey(), nil)
	require.ErrorIs(t, err, errs.ErrInvalid)
	require.ErrorContains(t, err, "unable to decode segment with no columns specified")
}

func TestDecodeSegment_RowJoinTruncation(t *testing.T) {
	longCol := escapeValues(t, []field.Value{
		field.Int64Value(1), field.Int64Value(2), field.Int64Value(3),
	}, format.Int64, 0)
	shortCol := escapeValues(t, []field.Value{
		field.Int64Value(9), field.Int64Value(8),
	}, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_deletions": deletionsHandler(t, nil),
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"long":  {{Codec: "", Data: longCol, ContinuationToken: ""}},
			"short": {{Codec: "", Data: shortCol, ContinuationToken: ""}},
		}),
	})

	rows, err := c.DecodeSegment(context.Background(), segKey(), map[string]field.ColumnMeta{
		"long":  int64Meta(),
		"short": int64Meta(),
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.True(t, rows[0].Get("long").Equal(field.Int64Value(1)))
	require.True(t, rows[0].Get("short").Equal(field.Int64Value(9)))
	require.True(t, rows[1].Get("long").Equal(field.Int64Value(2)))
	require.True(t, rows[1].Get("short").Equal(field.Int64Value(8)))
}

func TestDecodeSegment_AppliesDeletionBitmap(t *testing.T) {
	bitmap, err := deletion.CompressDeletions([]bool{false, true, false})
	require.NoError(t, err)
	colData := escapeValues(t, []field.Value{
		field.Int64Value(10), field.Int64Value(11), field.Int64Value(12),
	}, format.Int64, 0)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_deletions": deletionsHandler(t, bitmap),
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"col_0": {{Codec: "", Data: colData, ContinuationToken: ""}},
		}),
	})

	rows, err := c.DecodeSegment(context.Background(), segKey(), map[string]field.ColumnMeta{"col_0": int64Meta()})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.True(t, rows[0].Get("col_0").Equal(field.Int64Value(10)))
	require.True(t, rows[1].Get("col_0").Equal(field.Int64Value(12)))
}

func TestDecodeSegment_ScalarAndNestedColumns(t *testing.T) {
	// one compressed scalar column and one nested string column, as written
	// by rows {i: 7, s: ["item 0", "item 1"]} and {}
	iData := compressValues(t, []field.Value{field.Int64Value(7), field.Null()}, format.Int64, 0)
	sValues := []field.Value{
		field.ListValue(field.StringValue("item 0"), field.StringValue("item 1")),
		field.Null(),
	}
	sData := compressValues(t, sValues, format.String, 1)

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_deletions": deletionsHandler(t, nil),
		"read_segment_column": columnReadHandler(t, map[string][]ReadSegmentColumnResponse{
			"i": {{Codec: format.CodecQ, Data: iData, ContinuationToken: ""}},
			"s": {{Codec: format.CodecZ, Data: sData, ContinuationToken: ""}},
		}),
	})

	rows, err := c.DecodeSegment(context.Background(), segKey(), map[string]field.ColumnMeta{
		"i": {Dtype: format.Int64},
		"s": {Dtype: format.String, NestedListDepth: 1},
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	require.True(t, rows[0].Get("i").Equal(field.Int64Value(7)))
	require.True(t, rows[0].Get("s").Equal(sValues[0]))
	require.True(t, rows[1].Get("i").IsNull())
	require.True(t, rows[1].Get("s").IsNull())
}

func TestDecodeSegment_FreshCorrelationIDPerRead(t *testing.T) {
	colData := escapeValues(t, []field.Value{field.Int64Value(1)}, format.Int64, 0)

	var mu sync.Mutex
	seen := make(map[string]struct{})

	c, _ := newFakeClient(t, map[string]func([]byte) (int, []byte){
		"read_segment_deletions": func(body []byte) (int, []byte) {
			var req ReadSegmentDeletionsRequest
			require.NoError(t, json.Unmarshal(body, &req))
			require.NotEmpty(t, req.CorrelationID)
			mu.Lock()
			seen[req.CorrelationID] = struct{}{}
			mu.Unlock()
			return 200, hybridBody(t, &ReadSegmentDeletionsResponse{}, nil)
		},
		"read_segment_column": func(body []byte) (int, []byte) {
			var req ReadSegmentColumnRequest
			require.NoError(t, json.Unmarshal(body, &req))
			mu.Lock()
			_, ok := seen[req.CorrelationID]
			mu.Unlock()
			require.True(t, ok, "column read used a different correlation ID than the deletion read")
			resp := ReadSegmentColumnResponse{Data: colData}
			return 200, hybridBody(t, &resp, resp.Data)
		},
	})

	columns := map[string]field.ColumnMeta{"col_0": int64Meta()}
	_, err := c.DecodeSegment(context.Background(), segKey(), columns)
	require.NoError(t, err)
	_, err = c.DecodeSegment(context.Background(), segKey(), columns)
	require.NoError(t, err)

	// two logical reads, two distinct correlation IDs
	require.Len(t, seen, 2)
}
