package repository

import "errors"

// Configuration errors rejected at the store boundary.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyDriverChain    = errors.New("route must have at least one driver")
	ErrDuplicateDriver     = errors.New("driver appears twice in the chain")
	ErrUnknownDriver       = errors.New("unknown driver")
	ErrUnknownVehicle      = errors.New("unknown vehicle")
	ErrVehicleOutOfService = errors.New("vehicle is out of service")
	ErrInvalidRouteType    = errors.New("route type must be PICKUP or DROPOFF")
	ErrUnknownRoute        = errors.New("unknown route")
	ErrUnknownSenior       = errors.New("unknown senior")
	ErrBoardingOrderTaken  = errors.New("boarding order already used on this route")
	ErrDriverNameTaken     = errors.New("driver name already in use")
	ErrDriverInUse         = errors.New("driver is assigned to a route")
	ErrVehicleInUse        = errors.New("vehicle is assigned to a route")
	ErrRouteInUse          = errors.New("route still has seniors")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrInvalidLeave        = errors.New("invalid leave request")
)
