package inventory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/storage/mocks"
	"stock-reconciler/core/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, primary *fakePrimary, opts Options) *Service {
	t.Helper()
	feed := &fakeFeed{records: []reconcile.FeedRecord{
		{Key: "A1", Sellable: false},
		{Key: "B2", Sellable: false},
		{Key: "C3", Sellable: true},
	}}
	catalog := &fakeCatalog{quantities: map[string]int{"A1": 120, "B2": 0}}
	engine := reconcile.NewEngine(feed, catalog, primary, reconcile.Config{ThrottleMillis: 0, CatalogConcurrency: 5}, zap.NewNop())
	return NewService(engine, opts, zap.NewNop())
}

func decodeAll(t *testing.T, r io.Reader) []*stream.Event {
	t.Helper()
	reader := stream.NewReader(r)
	var events []*stream.Event
	for {
		e, err := reader.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, e)
	}
}

func eventsOfType(events []*stream.Event, typ stream.Type) []*stream.Event {
	var out []*stream.Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestService_StreamSpot(t *testing.T) {
	svc := newTestService(t, &fakePrimary{onHand: map[string]int{"A1": 115, "B2": 50}}, Options{})

	req, err := svc.SpotRequest([]string{"A1", " B2 ", "A1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B2"}, req.Keys)

	var buf bytes.Buffer
	svc.Stream(context.Background(), req, &buf)

	events := decodeAll(t, &buf)
	results := eventsOfType(events, stream.TypeResult)
	require.Len(t, results, 2)
	assert.Equal(t, reconcile.CategoryCatalogNotUpdated, results[1].Result.Category)

	last := events[len(events)-1]
	assert.True(t, last.Terminal())
	assert.Equal(t, stream.TypeComplete, last.Type)
	assert.Equal(t, 2, last.Results)
	assert.Equal(t, 2, last.Total)
}

func TestService_StreamFatal(t *testing.T) {
	svc := newTestService(t, &fakePrimary{authErr: errors.New("invalid_grant")}, Options{})
	req, err := svc.SpotRequest([]string{"A1"})
	require.NoError(t, err)

	var buf bytes.Buffer
	svc.Stream(context.Background(), req, &buf)

	events := decodeAll(t, &buf)
	last := events[len(events)-1]
	assert.Equal(t, stream.TypeError, last.Type)
	assert.True(t, last.Fatal)
	assert.Contains(t, last.Message, "invalid_grant")
	assert.Empty(t, eventsOfType(events, stream.TypeComplete))
}

type brokenPipe struct{ writes int }

func (b *brokenPipe) Write(p []byte) (int, error) {
	b.writes++
	if b.writes > 2 {
		return 0, errors.New("broken pipe")
	}
	return len(p), nil
}

func TestService_StreamStopsWhenClientGone(t *testing.T) {
	primary := &fakePrimary{onHand: map[string]int{}}
	svc := newTestService(t, primary, Options{})
	keys := make([]string, 20)
	for i := range keys {
		keys[i] = string(rune('A'+i)) + "X"
	}
	req, err := svc.SpotRequest(keys)
	require.NoError(t, err)

	svc.Stream(context.Background(), req, &brokenPipe{})
	assert.Less(t, primary.count(), len(keys))
}

func TestService_FullRequest(t *testing.T) {
	t.Run("NoSecondary", func(t *testing.T) {
		svc := newTestService(t, &fakePrimary{}, Options{})
		_, err := svc.FullRequest(context.Background(), "")
		assert.True(t, reconcile.IsValidation(err))
	})

	t.Run("InvalidImportName", func(t *testing.T) {
		svc := newTestService(t, &fakePrimary{}, Options{Storage: new(mocks.Client), Bucket: "b", ImportPrefix: "imports/"})
		_, err := svc.FullRequest(context.Background(), "../etc/passwd")
		assert.True(t, reconcile.IsValidation(err))
	})

	t.Run("StoredImport", func(t *testing.T) {
		store := new(mocks.Client)
		csv := io.NopCloser(strings.NewReader("SKU,Balance,InOrder\nA1,130,10\n"))
		store.On("GetObject", mock.Anything, "b", "imports/nyce.csv", mock.Anything).Return(csv, nil)

		svc := newTestService(t, &fakePrimary{onHand: map[string]int{"A1": 115}}, Options{Storage: store, Bucket: "b", ImportPrefix: "imports/"})
		req, err := svc.FullRequest(context.Background(), "nyce.csv")
		require.NoError(t, err)
		assert.Equal(t, "nyce.csv", req.Secondary.Name())

		var buf bytes.Buffer
		svc.Stream(context.Background(), req, &buf)
		events := decodeAll(t, &buf)

		summaries := eventsOfType(events, stream.TypeSummary)
		require.Len(t, summaries, 1)
		assert.Equal(t, 2, summaries[0].Summary.NotSellableCount)
		assert.Equal(t, 1, summaries[0].Summary.OverlapCount)
		assert.Equal(t, 1, summaries[0].Summary.SkippedCount)

		results := eventsOfType(events, stream.TypeResult)
		require.Len(t, results, 1)
		assert.Equal(t, reconcile.CategoryBusinessBlock, results[0].Result.Category)
		assert.Equal(t, reconcile.SeverityWarning, results[0].Result.Severity)
	})
}

func TestService_Collect(t *testing.T) {
	svc := newTestService(t, &fakePrimary{onHand: map[string]int{"A1": 120}}, Options{})
	req, err := svc.SpotRequest([]string{"A1", "Z9"})
	require.NoError(t, err)

	resp, err := svc.Collect(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, reconcile.CategoryPerfectlySynced, resp.Results[0].Category)
	assert.Equal(t, reconcile.CategoryNoStock, resp.Results[1].Category)
	assert.Equal(t, 2, resp.Report.Processed)
}

func TestService_Classify(t *testing.T) {
	svc := newTestService(t, &fakePrimary{}, Options{})

	res, err := svc.Classify(reconcile.StockSnapshot{Key: "A1", CatalogQuantity: 0, PrimaryOnHand: 50}, reconcile.ModeSpot)
	require.NoError(t, err)
	assert.Equal(t, reconcile.UnknownProductName, res.Name)
	assert.Equal(t, reconcile.SeverityIssue, res.Severity)

	_, err = svc.Classify(reconcile.StockSnapshot{Key: "A1"}, "weekly")
	assert.True(t, reconcile.IsValidation(err))
	_, err = svc.Classify(reconcile.StockSnapshot{}, reconcile.ModeSpot)
	assert.True(t, reconcile.IsValidation(err))
}
