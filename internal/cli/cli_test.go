package cli

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/clicks"
	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/grpcsrv"
	mw "github.com/SversusN/bodacious/internal/middleware"
	"github.com/SversusN/bodacious/internal/sheet"
	"github.com/SversusN/bodacious/internal/storage/primitivestorage"
)

func galleryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gallery", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(gallery.View{
			Order:   gallery.ParseOrder(r.URL.Query().Get("sort")),
			Warning: true,
			Items:   []gallery.Item{{Description: "Fly a plane", URL: "geo-fs.com", Clicks: 3, Icon: "✈️"}},
		})
	})
	mux.HandleFunc("/api/gallery/click", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.URL == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"url is required"}`))
			return
		}
		json.NewEncoder(w).Encode(gallery.Click{URL: gallery.NormalizeURL(req.URL), Clicks: 4})
	})
	mux.HandleFunc("/api/websites", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sheet.Success([]sheet.Link{{Description: "Make music", URL: "sandspiel.club"}}))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func run(t *testing.T, o *Options, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	o.Out = &out
	if o.HTTP == nil {
		o.HTTP = http.DefaultClient
	}
	cmd := newRootCmd(o)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	ts := galleryServer(t)
	out, err := run(t, &Options{}, "--server", ts.URL, "list", "--sort", "clicks")
	require.NoError(t, err)
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "Fly a plane")
	assert.Contains(t, out, "geo-fs.com")
}

func TestOpen(t *testing.T) {
	ts := galleryServer(t)
	var opened []string
	o := &Options{Open: func(u string) error {
		opened = append(opened, u)
		return nil
	}}

	out, err := run(t, o, "-s", ts.URL, "open", "geo-fs.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://geo-fs.com"}, opened)
	assert.Equal(t, "Opening https://geo-fs.com (4 clicks)\n", out)

	_, err = run(t, o, "-s", ts.URL, "open", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url is required")
	assert.Len(t, opened, 1)
}

func TestSheet(t *testing.T) {
	ts := galleryServer(t)
	out, err := run(t, &Options{}, "-s", ts.URL, "sheet")
	require.NoError(t, err)
	assert.Contains(t, out, "sandspiel.club")
}

func TestAdmin(t *testing.T) {
	srv := grpcsrv.NewGRPCServer(grpcsrv.Deps{
		Gallery: gallery.NewService(nil, clicks.NewMemoryStore(), nil, nil),
		Admin:   admin.NewService(primitivestorage.NewMemoryStorage(), ""),
		Auth:    mw.NewAuthMW("cli-secret"),
	})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = srv.Serve(lis)
	}()
	defer srv.Stop()
	addr := lis.Addr().String()

	_, err = run(t, &Options{}, "admin", "-g", addr, "ls")
	require.Error(t, err)

	token, err := run(t, &Options{}, "admin", "-g", addr, "login", admin.DefaultPassword)
	require.NoError(t, err)
	token = strings.TrimSpace(token)
	require.NotEmpty(t, token)

	id, err := run(t, &Options{}, "admin", "-g", addr, "--token", token, "add", "-d", "Slime", "-u", "slime-simulator.com")
	require.NoError(t, err)
	id = strings.TrimSpace(id)
	require.NotEmpty(t, id)

	_, err = run(t, &Options{}, "admin", "-g", addr, "--token", token, "update", id, "-d", "Slime!", "-u", "slime.com")
	require.NoError(t, err)

	out, err := run(t, &Options{}, "admin", "-g", addr, "--token", token, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Slime!")

	_, err = run(t, &Options{}, "admin", "-g", addr, "--token", token, "rm", id)
	require.NoError(t, err)
	_, err = run(t, &Options{}, "admin", "-g", addr, "--token", token, "rm", id)
	require.Error(t, err)
}
