package employee

import "errors"

var (
	ErrNotFound            = errors.New("employee not found")
	ErrDuplicateEmployeeID = errors.New("employee ID already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoProfilePicture    = errors.New("no profile picture found")
	ErrNoContactDetails    = errors.New("no contact details found")
)
