package symphony

// Wire shapes for the admin endpoints this tool consumes. Conversions into
// the audit domain live in adapters.go; nothing outside this package sees
// these types.

type streamFilter struct {
	StreamTypes []streamTypeFilter `json:"streamTypes"`
	Scope       string             `json:"scope"`
	Status      string             `json:"status"`
}

type streamTypeFilter struct {
	Type string `json:"type"`
}

type streamList struct {
	Count   int      `json:"count"`
	Streams []stream `json:"streams"`
}

type stream struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	IsExternal bool             `json:"isExternal"`
	Active     bool             `json:"active"`
	Origin     string           `json:"origin"`
	Attributes streamAttributes `json:"attributes"`
}

type streamAttributes struct {
	RoomName        string `json:"roomName"`
	CreatedDate     int64  `json:"createdDate"`
	CreatedByUserID int64  `json:"createdByUserId"`
	OriginCompany   string `json:"originCompany"`
}

type membershipList struct {
	Count   int          `json:"count"`
	Members []membership `json:"members"`
}

type membership struct {
	User      memberUser `json:"user"`
	IsCreator bool       `json:"isCreator"`
}

type memberUser struct {
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
	IsExternal  bool   `json:"isExternal"`
	Company     string `json:"company"`
	CompanyID   int64  `json:"companyId"`
}

type userList struct {
	Users []directoryUser `json:"users"`
}

type directoryUser struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Company     string `json:"company"`
}

type authResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}
