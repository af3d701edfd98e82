package domain

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}

// RequestContext carries authenticated user info extracted by the auth
// middleware. Handlers receive identity through this object rather than
// ambient globals.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the request is from an admin account.
func (rc RequestContext) IsAdmin() bool {
	return rc.Role == "admin"
}
