package handlers

import (
	userRepo "nestview/database/repository/user"
)

// HandlerBundle aggregates the constructed handlers for route registration.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	User     *UserHandler
	Property *PropertyHandler
	Booking  *BookingHandler
	Realtime *RealtimeHandler
}
