package handlers

import (
	userRepoPkg "careerpath/database/repository/user"

	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups the endpoint handlers with what the auth middleware needs.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache *redis.Client
	// MaxRequestsPerMin caps requests per client IP; zero disables rate limiting.
	MaxRequestsPerMin int

	Appointments *AppointmentHandler
	Users        *UserHandler
}
