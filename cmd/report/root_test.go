package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/quake-damage-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
)

type stubRunner struct {
	report  domain.Report
	err     error
	filters []domain.Filter
}

func (s *stubRunner) Run(_ context.Context, f domain.Filter) (domain.Report, error) {
	s.filters = append(s.filters, f)
	if s.err != nil {
		return domain.Report{}, s.err
	}
	return s.report, nil
}

func factory(r *stubRunner) pipelineFactory {
	return func(context.Context, io.Writer) (runner, error) { return r, nil }
}

func exampleReport() domain.Report {
	return domain.Report{
		SheetID:     "sheet-1",
		RecordCount: 2,
		EntryCount:  3,
		ViewCount:   3,
		Frequencies: domain.FrequencySummary{{DamageType: "ผนังร้าว", Count: 2}, {DamageType: "ท่อน้ำรั่ว", Count: 1}},
		TopRooms:    domain.RoomSummary{{Room: "805", Count: 3}},
		Entries: []domain.NormalizedEntry{
			{Room: "805", DamageType: "ผนังร้าว"},
			{Room: "805", DamageType: "ผนังร้าว"},
			{Room: "805", DamageType: "ท่อน้ำรั่ว"},
		},
	}
}

func execute(t *testing.T, r *stubRunner, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(factory(r))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummary(t *testing.T) {
	r := &stubRunner{report: exampleReport()}
	out, err := execute(t, r, "summary", "--room", "80", "--type", "ผนังร้าว", "--type", "ท่อน้ำรั่ว")
	require.NoError(t, err)

	require.Len(t, r.filters, 1)
	assert.Equal(t, domain.Filter{RoomQuery: "80", DamageTypes: []string{"ผนังร้าว", "ท่อน้ำรั่ว"}}, r.filters[0])

	assert.Contains(t, out, "sheet sheet-1: 2 responses, 3 damage entries, 3 in view")
	assert.Contains(t, out, "ผนังร้าว")
	assert.Contains(t, out, "805")
}

func TestSummary_DefaultsToAllTypes(t *testing.T) {
	r := &stubRunner{report: exampleReport()}
	_, err := execute(t, r, "summary")
	require.NoError(t, err)
	require.Len(t, r.filters, 1)
	assert.True(t, r.filters[0].AllTypes())
}

func TestSummary_FetchError(t *testing.T) {
	r := &stubRunner{err: &domain.FetchError{SheetID: "sheet-1", Err: errors.New("status 404")}}
	_, err := execute(t, r, "summary")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	out, err := execute(t, &stubRunner{report: exampleReport()}, "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 entries to "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	rows, err := f.GetRows(xlsx.DamageTypesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExport_RequiresOut(t *testing.T) {
	_, err := execute(t, &stubRunner{report: exampleReport()}, "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out")
}

func TestWriteSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, domain.Report{SheetID: "s"})
	assert.Contains(t, buf.String(), "0 responses")
}

const surveyCSV = "Timestamp,Room No,ลักษณะของความเสียหาย,รูปภาพ\n" +
	"3/28/2025 14:00,805,\"ผนังร้าว, ท่อน้ำรั่ว\",https://drive.google.com/open?id=1\n" +
	"3/28/2025 14:05,1205,ผนังร้าว,\n"

// sheetEnv points the CLI's config at a local export endpoint and turns on
// debug logging so any stray log line would surface.
func sheetEnv(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("SHEET_ID", "cli-sheet")
	t.Setenv("SHEET_BASE_URL", srv.URL)
	t.Setenv("SHEETS_API_KEY", "")
	t.Setenv("CACHE_TTL", "0s")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
}

func executeSplit(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCommand(newPipeline)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSummary_StdoutHoldsOnlyTables(t *testing.T) {
	sheetEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = io.WriteString(w, surveyCSV)
	})

	stdout, stderr, err := executeSplit(t, "summary")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "sheet cli-sheet: 2 responses, 3 damage entries, 3 in view"), stdout)
	assert.Contains(t, stdout, "ผนังร้าว")
	assert.Contains(t, stdout, "1205")
	assert.NotContains(t, stdout, `"level"`)
	assert.NotContains(t, stdout, `"msg"`)
	assert.Contains(t, stderr, "sheet source: csv export", "diagnostics go to stderr")
}

func TestSummary_FetchErrorLeavesStdoutEmpty(t *testing.T) {
	sheetEnv(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	stdout, stderr, err := executeSplit(t, "summary")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "load sheet failed")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "bogus", "text")
	logger.Info("dropped")
	assert.Empty(t, buf.String())
	logger.Warn("kept", "rows", 2)
	assert.Contains(t, buf.String(), "msg=kept")
	assert.Contains(t, buf.String(), "rows=2")
}
