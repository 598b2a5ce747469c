package symphony

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamaudit/internal/audit"
	dErrors "streamaudit/pkg/domain-errors"
)

func TestListStreams_RequestShapeAndMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pod/v2/admin/streams/list", r.URL.Path)
		assert.Equal(t, "session-123", r.Header.Get("sessionToken"))
		assert.Equal(t, "0", r.URL.Query().Get("skip"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		var filter streamFilter
		require.NoError(t, json.NewDecoder(r.Body).Decode(&filter))
		assert.Equal(t, "EXTERNAL", filter.Scope)
		assert.Equal(t, "ACTIVE", filter.Status)
		assert.Equal(t, []streamTypeFilter{{Type: "MIM"}, {Type: "ROOM"}}, filter.StreamTypes)

		json.NewEncoder(w).Encode(streamList{
			Count: 1,
			Streams: []stream{{
				ID:         "abc123",
				Type:       "ROOM",
				IsExternal: true,
				Active:     true,
				Origin:     "EXTERNAL",
				Attributes: streamAttributes{
					RoomName:        "Falcon",
					CreatedDate:     1623715200000,
					CreatedByUserID: 42,
					OriginCompany:   "Acme",
				},
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "session-123", time.Second)

	page, err := client.ListStreams(context.Background(), 0, 100)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	got := page.Items[0]
	assert.Equal(t, audit.Stream{
		ID:     "abc123",
		Type:   audit.StreamTypeRoom,
		Scope:  audit.ScopeExternal,
		Origin: audit.OriginExternal,
		Active: true,
		Attributes: audit.StreamAttributes{
			RoomName:        "Falcon",
			CreatedDate:     1623715200000,
			CreatedByUserID: 42,
			OriginCompany:   "Acme",
		},
	}, got)
}

func TestListMembers_PathAndPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pod/v1/admin/stream/abc123/membership/list", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("skip"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(membershipList{
			Count: 201,
			Members: []membership{{
				User: memberUser{
					UserID:      7,
					DisplayName: "Eve",
					IsExternal:  true,
					Company:     "Acme Corp",
					CompanyID:   191,
				},
				IsCreator: true,
			}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "session-123", time.Second)

	page, err := client.ListMembers(context.Background(), "abc123", 200, 100)
	require.NoError(t, err)

	assert.Equal(t, 201, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, audit.Member{
		User: audit.User{
			UserID:      7,
			DisplayName: "Eve",
			External:    true,
			Company:     "Acme Corp",
			CompanyID:   191,
		},
		IsCreator: true,
	}, page.Items[0])
}

func TestLookupUsers_BatchQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pod/v3/users", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("uid"))
		assert.Equal(t, "false", r.URL.Query().Get("local"))

		json.NewEncoder(w).Encode(userList{
			Users: []directoryUser{{ID: 42, DisplayName: "Carol", Company: "Acme Corp"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "session-123", time.Second)

	users, err := client.LookupUsers(context.Background(), []int64{42})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Carol", users[0].DisplayName)
	assert.Equal(t, "Acme Corp", users[0].Company)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(userList{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "session-123", time.Second, WithMaxRetries(5))

	_, err := client.LookupUsers(context.Background(), []int64{1})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestClient_AuthRejectionIsPermanent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "expired", time.Second, WithMaxRetries(5))

	_, err := client.LookupUsers(context.Background(), []int64{1})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Equal(t, 1, calls, "401 must not be retried")
}

func TestClient_ExhaustedRetriesSurfaceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "session-123", time.Second, WithMaxRetries(1))

	_, err := client.LookupUsers(context.Background(), []int64{1})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestClient_MultiPageWalkthrough(t *testing.T) {
	// Sanity check that adapter paging composes with audit.FetchAll.
	total := 230
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip := 0
		fmt.Sscanf(r.URL.Query().Get("skip"), "%d", &skip)
		n := 100
		if skip+n > total {
			n = total - skip
		}
		members := make([]membership, n)
		for i := range members {
			members[i] = membership{User: memberUser{UserID: int64(skip + i), DisplayName: fmt.Sprintf("u%d", skip+i)}}
		}
		json.NewEncoder(w).Encode(membershipList{Count: total, Members: members})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "session-123", time.Second)

	all, err := audit.FetchAll(context.Background(), func(ctx context.Context, skip, limit int) (audit.Page[audit.Member], error) {
		return client.ListMembers(ctx, "abc123", skip, limit)
	})
	require.NoError(t, err)
	require.Len(t, all, total)
	assert.Equal(t, int64(0), all[0].User.UserID)
	assert.Equal(t, int64(total-1), all[total-1].User.UserID)
}
