package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reusehub/internal/availability"
	"reusehub/internal/catalog"
	"reusehub/internal/identity"
	"reusehub/internal/intake"
	"reusehub/internal/ledger"
	"reusehub/internal/location"
	"reusehub/internal/server"
	"reusehub/internal/session"
	"reusehub/internal/store/memstore"
	"reusehub/internal/taxonomy"
	"reusehub/pkg/eventlog"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := memstore.New()
	st.SeedCategories(taxonomy.Category{MainCategory: "Furniture", SubCategory: "Chair"})
	st.SeedShelf(location.Shelf{RoomNum: 1, ShelfNum: 1})

	log := eventlog.NewMemoryLog()
	sessions := session.NewMemoryStore()

	taxonomySvc := taxonomy.NewService(st)
	locationSvc := location.NewService(st)
	catalogSvc := catalog.NewService(st, locationSvc)
	identitySvc := identity.NewService(st, log)
	ledgerSvc := ledger.NewService(st, identitySvc, log)
	intakeSvc := intake.NewService(identitySvc, taxonomySvc, catalogSvc, log)

	ctx := context.Background()
	_, err := identitySvc.Register(ctx, identity.User{Username: "sam", FirstName: "Sam", LastName: "Ode", Role: identity.RoleStaff})
	require.NoError(t, err)
	_, err = identitySvc.Register(ctx, identity.User{Username: "dora", FirstName: "Dora", LastName: "Ek", Role: identity.RoleDonor})
	require.NoError(t, err)
	_, err = identitySvc.Register(ctx, identity.User{Username: "cleo", FirstName: "Cleo", LastName: "Fir", Role: identity.RoleClient})
	require.NoError(t, err)

	router := server.New(server.Handlers{
		Taxonomy:     taxonomy.NewHandler(taxonomySvc),
		Location:     location.NewHandler(locationSvc),
		Catalog:      catalog.NewHandler(catalogSvc),
		Availability: availability.NewHandler(availability.NewService(st)),
		Ledger:       ledger.NewHandler(ledgerSvc, sessions),
		Intake:       intake.NewHandler(intakeSvc),
		Identity:     identity.NewHandler(identitySvc),
	}, sessions)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	base      string
	sessionID string
	username  string
	role      string
}

func staffClient(srv *httptest.Server) *client {
	return &client{base: srv.URL, sessionID: uuid.New().String(), username: "sam", role: "staff"}
}

func (c *client) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(t, err)
	if c.username != "" {
		req.Header.Set("X-Acting-User", c.username)
		req.Header.Set("X-Session-ID", c.sessionID)
		req.Header.Set("X-Acting-Role", c.role)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (c *client) donate(t *testing.T, description string) int64 {
	t.Helper()
	resp := c.do(t, http.MethodPost, "/donations", map[string]interface{}{
		"donorUsername": "dora",
		"item": map[string]interface{}{
			"description": description,
			"category":    map[string]string{"mainCategory": "Furniture", "subCategory": "Chair"},
		},
		"pieces": []map[string]interface{}{
			{"description": "whole", "length": 45, "width": 45, "height": 90, "roomNum": 1, "shelfNum": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ItemID int64 `json:"itemID"`
	}
	decode(t, resp, &created)
	return created.ItemID
}

func TestDonationToOrderFlow(t *testing.T) {
	srv := newServer(t)
	staff := staffClient(srv)

	itemID := staff.donate(t, "oak dining chair")

	// The donated item shows up in the availability listing.
	resp := staff.do(t, http.MethodGet, "/available-items?mainCategory=Furniture&subCategory=Chair", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed struct {
		Items []catalog.Item `json:"items"`
	}
	decode(t, resp, &listed)
	require.Len(t, listed.Items, 1)
	assert.Equal(t, itemID, listed.Items[0].ItemID)

	// Start an order; its id becomes this session's open-order pointer.
	resp = staff.do(t, http.MethodPost, "/orders", map[string]string{"clientUsername": "cleo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var started struct {
		OrderID int64 `json:"orderID"`
	}
	decode(t, resp, &started)

	resp = staff.do(t, http.MethodPost, "/current-order/items", map[string]int64{"itemID": itemID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = staff.do(t, http.MethodGet, "/current-order", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var order ledger.Order
	decode(t, resp, &order)
	assert.Equal(t, started.OrderID, order.OrderID)
	assert.Equal(t, "cleo", order.ClientUsername)
	require.Len(t, order.Items, 1)
	assert.Equal(t, itemID, order.Items[0].ItemID)

	// The claimed item disappears from the availability listing.
	resp = staff.do(t, http.MethodGet, "/available-items?mainCategory=Furniture&subCategory=Chair", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed.Items = nil
	decode(t, resp, &listed)
	assert.Empty(t, listed.Items)
}

func TestAddItemConflictOverHTTP(t *testing.T) {
	srv := newServer(t)
	first := staffClient(srv)
	second := staffClient(srv)

	itemID := first.donate(t, "oak dining chair")

	for _, c := range []*client{first, second} {
		resp := c.do(t, http.MethodPost, "/orders", map[string]string{"clientUsername": "cleo"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := first.do(t, http.MethodPost, "/current-order/items", map[string]int64{"itemID": itemID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = second.do(t, http.MethodPost, "/current-order/items", map[string]int64{"itemID": itemID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStaffOnlyOperations(t *testing.T) {
	srv := newServer(t)
	visitor := &client{base: srv.URL, sessionID: uuid.New().String(), username: "cleo", role: "client"}

	resp := visitor.do(t, http.MethodPost, "/orders", map[string]string{"clientUsername": "cleo"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAbandonCurrentOrder(t *testing.T) {
	srv := newServer(t)
	staff := staffClient(srv)

	resp := staff.do(t, http.MethodPost, "/orders", map[string]string{"clientUsername": "cleo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var started struct {
		OrderID int64 `json:"orderID"`
	}
	decode(t, resp, &started)

	resp = staff.do(t, http.MethodDelete, "/current-order", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = staff.do(t, http.MethodGet, "/current-order", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The abandoned order stays addressable by id.
	resp = staff.do(t, http.MethodGet, fmt.Sprintf("/orders/%d", started.OrderID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedSessionID(t *testing.T) {
	srv := newServer(t)
	broken := &client{base: srv.URL, sessionID: "not-a-uuid", username: "sam", role: "staff"}

	resp := broken.do(t, http.MethodGet, "/rooms", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
