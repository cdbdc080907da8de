package response

type LoginResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
}

type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
