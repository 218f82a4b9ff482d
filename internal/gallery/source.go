package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/sheet"
)

// Source откуда галерея берёт ссылки
type Source interface {
	Links(ctx context.Context) ([]sheet.Link, error)
}

// EndpointSource читает ответ конвертера по HTTP
type EndpointSource struct {
	client *http.Client
	url    string
}

func NewEndpointSource(client *http.Client, url string) *EndpointSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &EndpointSource{client: client, url: url}
}

// Links не 2xx, битый JSON, success=false или пустой data считаются ошибкой
func (e *EndpointSource) Links(ctx context.Context) ([]sheet.Link, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("failed to fetch: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	var env sheet.Envelope
	if err = json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerrors.ErrBadEnvelope, err)
	}
	if !env.Success || env.Data == nil {
		return nil, internalerrors.ErrBadEnvelope
	}
	return env.Data, nil
}

// FetcherSource берёт таблицу напрямую, без HTTP прослойки конвертера
type FetcherSource struct {
	f *sheet.Fetcher
}

func NewFetcherSource(f *sheet.Fetcher) *FetcherSource {
	return &FetcherSource{f: f}
}

func (s *FetcherSource) Links(ctx context.Context) ([]sheet.Link, error) {
	res, err := s.f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return res.Links, nil
}
