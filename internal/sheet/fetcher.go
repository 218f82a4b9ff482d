package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/SversusN/bodacious/internal/internalerrors"
)

// Fetcher загружает CSV выгрузку по HTTP. Без повторов и кэша.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher конструктор. Пустой url означает DefaultURL, nil клиент - http.DefaultClient
func NewFetcher(client *http.Client, url string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &Fetcher{client: client, url: url}
}

// URL адрес выгрузки
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch скачивает таблицу и разбирает её
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", internalerrors.ErrSheetUnavailable, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", internalerrors.ErrSheetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{}, internalerrors.NewStatusError(resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read body: %v", internalerrors.ErrSheetUnavailable, err)
	}
	return Parse(string(body)), nil
}
