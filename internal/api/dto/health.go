package dto

type HealthResponse struct {
	Status     string   `json:"status"`
	Strategies []string `json:"strategies"`
	Countries  int      `json:"countries"`
}
