package grpcsrv

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/clicks"
	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/grpcsrv/interceptors"
	mw "github.com/SversusN/bodacious/internal/middleware"
	"github.com/SversusN/bodacious/internal/sheet"
	"github.com/SversusN/bodacious/internal/storage/primitivestorage"
)

func newTestClient(t *testing.T, sheetURL string) *GalleryClient {
	t.Helper()
	fetcher := sheet.NewFetcher(nil, sheetURL)
	srv := NewGRPCServer(Deps{
		Fetcher: fetcher,
		Gallery: gallery.NewService(gallery.NewFetcherSource(fetcher), clicks.NewMemoryStore(), nil, nil),
		Admin:   admin.NewService(primitivestorage.NewMemoryStorage(), ""),
		Auth:    mw.NewAuthMW("test-secret"),
	})
	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewGalleryClient(conn)
}

func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Description,URL\nFly a plane,geo-fs.com\nMake music,sandspiel.club\n"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchWebsites(t *testing.T) {
	c := newTestClient(t, sheetServer(t).URL)
	res, err := c.FetchWebsites(context.Background())
	require.NoError(t, err)
	assert.True(t, res.GetFields()["success"].GetBoolValue())
	data := res.GetFields()["data"].GetListValue().GetValues()
	require.Len(t, data, 2)
	assert.Equal(t, "geo-fs.com", data[0].GetStructValue().GetFields()["url"].GetStringValue())
}

func TestFetchWebsitesFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	c := newTestClient(t, ts.URL)
	res, err := c.FetchWebsites(context.Background())
	assert.Nil(t, res)
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Equal(t, "Failed to fetch sheet: 404", status.Convert(err).Message())
}

func TestGalleryAndClick(t *testing.T) {
	c := newTestClient(t, sheetServer(t).URL)
	ctx := context.Background()

	_, err := c.Click(ctx, "")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.Click(ctx, "evil.example/phish")
	assert.Equal(t, codes.NotFound, status.Code(err))

	click, err := c.Click(ctx, "geo-fs.com")
	require.NoError(t, err)
	assert.Equal(t, "https://geo-fs.com", click.GetFields()["url"].GetStringValue())
	assert.Equal(t, float64(1), click.GetFields()["clicks"].GetNumberValue())

	view, err := c.Gallery(ctx, "clicks")
	require.NoError(t, err)
	assert.Equal(t, "clicks", view.GetFields()["order"].GetStringValue())
	items := view.GetFields()["items"].GetListValue().GetValues()
	require.Len(t, items, 2)
	assert.Equal(t, "geo-fs.com", items[0].GetStructValue().GetFields()["url"].GetStringValue())
}

func TestAdminMethods(t *testing.T) {
	c := newTestClient(t, sheetServer(t).URL)
	ctx := context.Background()

	_, err := c.ListWebsites(ctx)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.Login(ctx, "wrong")
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	token, err := c.Login(ctx, admin.DefaultPassword)
	require.NoError(t, err)
	ctx = metadata.AppendToOutgoingContext(ctx, interceptors.AuthorizationKey, "Bearer "+token.GetValue())

	empty, _ := structpb.NewStruct(map[string]any{"description": " ", "url": "x.com"})
	_, err = c.AddWebsite(ctx, empty)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	in, _ := structpb.NewStruct(map[string]any{"description": "Slime", "url": "slime-simulator.com"})
	added, err := c.AddWebsite(ctx, in)
	require.NoError(t, err)
	id := added.GetFields()["id"].GetStringValue()
	assert.NotEmpty(t, id)
	assert.Equal(t, float64(1), added.GetFields()["order_index"].GetNumberValue())

	upd, _ := structpb.NewStruct(map[string]any{"id": id, "description": "Slime 2", "url": "slime.com"})
	_, err = c.UpdateWebsite(ctx, upd)
	require.NoError(t, err)

	list, err := c.ListWebsites(ctx)
	require.NoError(t, err)
	websites := list.GetFields()["websites"].GetListValue().GetValues()
	require.Len(t, websites, 1)
	assert.Equal(t, "Slime 2", websites[0].GetStructValue().GetFields()["description"].GetStringValue())

	_, err = c.DeleteWebsite(ctx, id)
	require.NoError(t, err)
	_, err = c.DeleteWebsite(ctx, id)
	assert.Equal(t, codes.NotFound, status.Code(err))
}
