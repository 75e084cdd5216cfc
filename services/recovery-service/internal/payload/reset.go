package payload

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
	Type  string `json:"type"  validate:"required,oneof=user mentor"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"        validate:"required"`
	Type        string `json:"type"         validate:"required,oneof=user mentor"`
	NewPassword string `json:"new_password" validate:"required"`
}

type AdminResetRequest struct {
	Type string `json:"type" validate:"required,oneof=user mentor"`
}

type NotifyAccountRequest struct {
	Type   string `json:"type"   validate:"required,oneof=user mentor"`
	Notice string `json:"notice" validate:"required,oneof=suspension deletion reactivation"`
	Reason string `json:"reason"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
