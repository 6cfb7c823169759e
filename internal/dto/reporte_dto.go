package dto

// ReporteCostosRequest enqueues an async menu costing report.
// The PDF is generated in the worker pool and mailed to Email.
type ReporteCostosRequest struct {
	MenuID string `json:"menu_id" validate:"required,uuid"`
	Email  string `json:"email"   validate:"required,email"`
}

type ReporteCostosResponse struct {
	Encolado bool   `json:"encolado"`
	MenuID   string `json:"menu_id"`
}
