package types

// =============== employment question TYPES ===============
type QuestionRequest struct {
	EmploymentResumeID int `json:"employment_resume_id"`
}

// =============== session TYPES ===============
type SessionCookie struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type SessionFile struct {
	Cookies []SessionCookie `yaml:"cookies"`
}
