package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/handlers"
	"github.com/SversusN/bodacious/internal/pkg/utils"
	"github.com/SversusN/bodacious/internal/sheet"
)

func (o *Options) gallery(ctx context.Context, order gallery.Order) (gallery.View, error) {
	var view gallery.View
	path := "/api/gallery?sort=" + url.QueryEscape(string(order))
	err := o.do(ctx, http.MethodGet, path, nil, &view)
	return view, err
}

func (o *Options) click(ctx context.Context, link string) (gallery.Click, error) {
	var c gallery.Click
	err := o.do(ctx, http.MethodPost, "/api/gallery/click", handlers.JSONClickRequest{URL: link}, &c)
	return c, err
}

// websites ответ конвертера читаем и при 500: там тоже конверт
func (o *Options) websites(ctx context.Context) (sheet.Envelope, error) {
	var env sheet.Envelope
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, utils.GetFullURL(o.Server, "/api/websites"), nil)
	if err != nil {
		return env, err
	}
	resp, err := o.HTTP.Do(req)
	if err != nil {
		return env, err
	}
	defer resp.Body.Close()
	if err = json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return env, fmt.Errorf("bad response %d: %w", resp.StatusCode, err)
	}
	return env, nil
}

func (o *Options) do(ctx context.Context, method string, path string, in any, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, utils.GetFullURL(o.Server, path), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, e.Error)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
