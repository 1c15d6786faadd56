package dto

type CreateCompanyRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	SubscriptionType string `json:"subscription_type"`
	BranchesLimit    int    `json:"branches_limit"`
	EmployeesLimit   int    `json:"employees_limit"`
}

type UpdateCompanyRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	SubscriptionType *string `json:"subscription_type"`
	BranchesLimit    *int    `json:"branches_limit"`
	EmployeesLimit   *int    `json:"employees_limit"`
	Active           *bool   `json:"active"`
}
