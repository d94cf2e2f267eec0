package models

type UserRegistrationRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CounselorRegistrationRequest creates a counselor account together with its profile.
type CounselorRegistrationRequest struct {
	UserRegistrationRequest
	Specializations []string                  `json:"specializations"`
	Bio             string                    `json:"bio" binding:"max=500"`
	Availability    []AvailabilityWindowInput `json:"availability" binding:"dive"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
