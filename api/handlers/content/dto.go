package content

// CarbonRequest trip to estimate
type CarbonRequest struct {
	Distance    *float64 `json:"distance" binding:"required"`
	VehicleType string   `json:"vehicle_type" binding:"required,max=20"`
}

// VisionRequest base64 encoded posture photo
type VisionRequest struct {
	Image string `json:"image" binding:"required"`
}

// PoseQuery yoga pose filter
type PoseQuery struct {
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// ContactQuery emergency contact filter
type ContactQuery struct {
	District    string `form:"district"`
	ServiceType string `form:"service_type"`
}
