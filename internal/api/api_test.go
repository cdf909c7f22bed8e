package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/concursohub/crawler/internal/api"
	"github.com/concursohub/crawler/internal/domain"
	"github.com/concursohub/crawler/internal/logger"
	"github.com/concursohub/crawler/internal/pipeline"
)

type fakeRunner struct {
	lastType domain.ContentType
	result   *domain.RunResult
	err      error
}

func (r *fakeRunner) Run(_ context.Context, ct domain.ContentType) (*domain.RunResult, error) {
	r.lastType = ct
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

type fakePinger struct {
	err error
}

func (p *fakePinger) PingContext(context.Context) error { return p.err }

func serve(t *testing.T, runner *fakeRunner, pinger api.Pinger, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := api.SetupRouter(logger.NewNoOp(), runner, pinger)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestScrape_Success(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{result: &domain.RunResult{
		ContentType:   domain.ContentOpen,
		Upserted:      512,
		LogosUploaded: 40,
		StaleDeleted:  3,
	}}

	rec := serve(t, runner, nil, http.MethodPost, "/scrape/concursos")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.ContentOpen, runner.lastType)
	require.JSONEq(t, `{"message":"512 upserted, 40 logos uploaded, 3 stale deleted"}`, rec.Body.String())
}

func TestScrape_AcceptsGet(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{result: &domain.RunResult{}}
	rec := serve(t, runner, nil, http.MethodGet, "/scrape/noticias")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.ContentNews, runner.lastType)
}

func TestScrape_UnknownType(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	rec := serve(t, runner, nil, http.MethodPost, "/scrape/loterias")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, runner.lastType)
}

func TestScrape_RunFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: pipeline.ErrBelowSafetyThreshold}
	rec := serve(t, runner, nil, http.MethodPost, "/scrape/concursos")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "below safety threshold")
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := serve(t, &fakeRunner{}, &fakePinger{}, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthz_DegradedOnPingFailure(t *testing.T) {
	t.Parallel()

	pinger := &fakePinger{err: errors.New("connection refused")}
	rec := serve(t, &fakeRunner{}, pinger, http.MethodGet, "/healthz")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "degraded")
}

func TestPreflightShortCircuits(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	rec := serve(t, runner, nil, http.MethodOptions, "/scrape/concursos")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, runner.lastType)
}
