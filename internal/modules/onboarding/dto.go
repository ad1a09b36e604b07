package onboarding

const dashboardPath = "/chef/dashboard"

type DryRunRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

// StatusResponse is either the redirect for a chef who already went live or
// the current wizard.
type StatusResponse struct {
	Onboarded bool   `json:"onboarded"`
	Redirect  string `json:"redirect,omitempty"`
	Wizard    *View  `json:"wizard,omitempty"`
}
