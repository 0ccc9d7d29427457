package dto

// StatusCount is an application count for one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// SkillCount is an application count for one skill track with its
// per-status breakdown
type SkillCount struct {
	SkillID   int64  `json:"skillId"`
	SkillName string `json:"skillName"`
	Count     int64  `json:"count"`
	Pending   int64  `json:"pending"`
	Accepted  int64  `json:"accepted"`
	Rejected  int64  `json:"rejected"`
}

// DepartmentCount is an application count for one department
type DepartmentCount struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	Count          int64  `json:"count"`
}

// AnalyticsSummary aggregates application volumes for the admin dashboard
type AnalyticsSummary struct {
	TotalApplications int64             `json:"totalApplications"`
	TotalTrainers     int64             `json:"totalTrainers"`
	TotalSkills       int64             `json:"totalSkills"`
	AcceptanceRate    float64           `json:"acceptanceRate"`
	ByStatus          []StatusCount     `json:"byStatus"`
	BySkill           []SkillCount      `json:"bySkill"`
	ByDepartment      []DepartmentCount `json:"byDepartment"`
}
