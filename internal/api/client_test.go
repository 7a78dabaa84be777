package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/api/apitest"
	"github.com/idilsaglam/tada/internal/model"
)

func newTestClient(t *testing.T, srv *apitest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	for _, u := range []string{"", "localhost:7000", "ftp://example.com", "http://"} {
		_, err := NewClient(u)
		assert.Error(t, err, u)
	}
}

func TestListReturnsServerOrder(t *testing.T) {
	srv := apitest.NewServer(
		model.Item{ID: "2", Description: "second"},
		model.Item{ID: "1", Description: "first", IsCompleted: true},
	)
	defer srv.Close()

	items, err := newTestClient(t, srv).List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.Item{
		{ID: "2", Description: "second"},
		{ID: "1", Description: "first", IsCompleted: true},
	}, items)
	require.Equal(t, 1, srv.Calls(apitest.OpList))
}

func TestListEmptyIsNotNil(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	items, err := newTestClient(t, srv).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestCreateSendsDescriptionAndFlagOnly(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	got, err := newTestClient(t, srv).Create(context.Background(), model.Item{ID: "ignored", Description: "Todo Item 1"})
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	require.NotEqual(t, model.ID("ignored"), got.ID)
	require.Equal(t, "Todo Item 1", got.Description)
	require.False(t, got.IsCompleted)

	bodies := srv.Bodies(apitest.OpCreate)
	require.Len(t, bodies, 1)
	require.JSONEq(t, `{"description":"Todo Item 1","isCompleted":false}`, bodies[0])
}

func TestUpdatePutsFullItem(t *testing.T) {
	srv := apitest.NewServer(model.Item{ID: "1", Description: "Todo Item 1"})
	defer srv.Close()

	got, err := newTestClient(t, srv).Update(context.Background(), model.Item{ID: "1", Description: "Todo Item 1", IsCompleted: true})
	require.NoError(t, err)
	require.Equal(t, model.Item{ID: "1", Description: "Todo Item 1", IsCompleted: true}, got)
	require.JSONEq(t, `{"id":"1","description":"Todo Item 1","isCompleted":true}`, srv.Bodies(apitest.OpUpdate)[0])
}

func TestUpdateRequiresID(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	_, err := newTestClient(t, srv).Update(context.Background(), model.Item{Description: "x"})
	require.Error(t, err)
	require.Zero(t, srv.Calls(apitest.OpUpdate))
}

func TestStatusErrorCarriesDetail(t *testing.T) {
	srv := apitest.NewServer(model.Item{ID: "1", Description: "a"})
	defer srv.Close()
	srv.Fail(apitest.OpUpdate, http.StatusBadRequest, `{"title":"Description is required"}`)

	_, err := newTestClient(t, srv).Update(context.Background(), model.Item{ID: "1", Description: "a", IsCompleted: true})
	require.Error(t, err)

	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, http.StatusBadRequest, serr.StatusCode)
	require.Equal(t, http.MethodPut, serr.Method)
	require.Equal(t, "Description is required", serr.Detail)
	require.Contains(t, err.Error(), "request failed with status code 400: Description is required")
}

func TestServerValidationSurfacesAsStatusError(t *testing.T) {
	srv := apitest.NewServer(model.Item{ID: "1", Description: "dup"})
	defer srv.Close()

	_, err := newTestClient(t, srv).Create(context.Background(), model.Item{Description: "dup"})
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "Description already exists", serr.Detail)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "list items")
}

func TestCanceledContext(t *testing.T) {
	srv := apitest.NewServer()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(t, srv).List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL + "/todo")
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/todo/api/todoItems", gotPath)
}

func TestDetailFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"problem title", `{"type":"x","title":"One or more validation errors occurred."}`, "One or more validation errors occurred."},
		{"detail wins", `{"title":"Bad","detail":"Id mismatch"}`, "Id mismatch"},
		{"message", `{"message":"nope"}`, "nope"},
		{"json string", `"Description already exists"`, "Description already exists"},
		{"plain text", "  Bad\n  Gateway ", "Bad Gateway"},
		{"object without text", `{"code":5}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detailFromBody([]byte(tt.body)))
		})
	}
}
