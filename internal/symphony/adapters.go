package symphony

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"streamaudit/internal/audit"
)

// The Client satisfies the audit package's StreamLister, MembershipLister,
// and Directory interfaces through these adapters. Wire shapes are converted
// at this boundary so the audit engine never sees backend JSON.

var externalActiveFilter = streamFilter{
	StreamTypes: []streamTypeFilter{
		{Type: string(audit.StreamTypeMIM)},
		{Type: string(audit.StreamTypeRoom)},
	},
	Scope:  audit.ScopeExternal,
	Status: "ACTIVE",
}

// ListStreams pages the enterprise stream list, filtered to external active
// rooms and multi-party direct messages.
func (c *Client) ListStreams(ctx context.Context, skip, limit int) (audit.Page[audit.Stream], error) {
	query := url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}
	var out streamList
	if err := c.do(ctx, http.MethodPost, "/pod/v2/admin/streams/list", query, externalActiveFilter, &out); err != nil {
		return audit.Page[audit.Stream]{}, err
	}

	page := audit.Page[audit.Stream]{Total: out.Count}
	for _, s := range out.Streams {
		page.Items = append(page.Items, toStream(s))
	}
	return page, nil
}

// ListMembers pages the full membership of one stream.
func (c *Client) ListMembers(ctx context.Context, streamID string, skip, limit int) (audit.Page[audit.Member], error) {
	query := url.Values{
		"skip":  {strconv.Itoa(skip)},
		"limit": {strconv.Itoa(limit)},
	}
	path := fmt.Sprintf("/pod/v1/admin/stream/%s/membership/list", url.PathEscape(streamID))
	var out membershipList
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return audit.Page[audit.Member]{}, err
	}

	page := audit.Page[audit.Member]{Total: out.Count}
	for _, m := range out.Members {
		page.Items = append(page.Items, audit.Member{
			User: audit.User{
				UserID:      m.User.UserID,
				DisplayName: m.User.DisplayName,
				External:    m.User.IsExternal,
				Company:     m.User.Company,
				CompanyID:   m.User.CompanyID,
			},
			IsCreator: m.IsCreator,
		})
	}
	return page, nil
}

// LookupUsers resolves user ids through the batch directory endpoint.
func (c *Client) LookupUsers(ctx context.Context, ids []int64) ([]audit.User, error) {
	uids := make([]string, 0, len(ids))
	for _, id := range ids {
		uids = append(uids, strconv.FormatInt(id, 10))
	}
	query := url.Values{
		"uid":   {strings.Join(uids, ",")},
		"local": {"false"},
	}
	var out userList
	if err := c.do(ctx, http.MethodGet, "/pod/v3/users", query, nil, &out); err != nil {
		return nil, err
	}

	users := make([]audit.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, audit.User{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			Company:     u.Company,
		})
	}
	return users, nil
}

func toStream(s stream) audit.Stream {
	scope := audit.ScopeInternal
	if s.IsExternal {
		scope = audit.ScopeExternal
	}
	return audit.Stream{
		ID:     s.ID,
		Type:   audit.StreamType(s.Type),
		Scope:  scope,
		Origin: s.Origin,
		Active: s.Active,
		Attributes: audit.StreamAttributes{
			RoomName:        s.Attributes.RoomName,
			CreatedDate:     s.Attributes.CreatedDate,
			CreatedByUserID: s.Attributes.CreatedByUserID,
			OriginCompany:   s.Attributes.OriginCompany,
		},
	}
}
