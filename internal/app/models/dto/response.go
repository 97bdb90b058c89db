package dto

// HealthResponse reports service liveness and store state
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Driver  string `json:"driver" example:"postgres"`
	Courses int64  `json:"courses" example:"3"`
}

// PingResponse is the body of GET /ping
type PingResponse struct {
	Message string `json:"message" example:"pong"`
	Status  string `json:"status" example:"success"`
}
