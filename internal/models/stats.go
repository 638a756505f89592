package models

// StatusCount is one row of a grouped count query.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// ProposalStats summarises proposal submissions by lifecycle state.
type ProposalStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

// ProjectStats summarises projects.
type ProjectStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// CountStat is a flat total.
type CountStat struct {
	Total int `json:"total"`
}

// DashboardStats is the admin dashboard aggregate, computed store-side with
// grouped counts so it is snapshot-consistent under concurrent writes.
type DashboardStats struct {
	Proposals   ProposalStats `json:"proposals"`
	Projects    ProjectStats  `json:"projects"`
	Partners    CountStat     `json:"partners"`
	TeamMembers CountStat     `json:"team_members"`
}
