package handler

type createStudentRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name"  validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Department string `json:"department" validate:"required"`
}

type initiatePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}
