package api

// DrawnCardRequest is one card of a submitted draw.
type DrawnCardRequest struct {
	CardID   string `json:"cardId"   validate:"required"`
	Reversed bool   `json:"reversed"`
}

// CreateReadingRequest is the body of POST /api/readings: a completed
// three-card draw for one category.
type CreateReadingRequest struct {
	Category string             `json:"category" validate:"required"`
	Cards    []DrawnCardRequest `json:"cards"    validate:"required,len=3,dive"`
}

// InterpretationRequest is the body of POST /api/tarot-interpretation: an
// ad-hoc card selection to interpret without storing a reading.
type InterpretationRequest struct {
	Category string             `json:"category" validate:"required"`
	Cards    []DrawnCardRequest `json:"cards"    validate:"required,len=3,dive"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token after register or login.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
