package dto

// ─── Requests ────────────────────────────────────────────────────────────────

type SignupRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2"`
	Email    string  `json:"email"     validate:"required,email"`
	Phone    *string `json:"phone"     validate:"omitempty,min=7"`
	Password string  `json:"password"  validate:"required,min=8"`
	Role     string  `json:"role"      validate:"required,oneof=Manager Sales Finance Admin"`

	// Shop metadata, required when role is Manager or Finance
	ShopName      *string `json:"shop_name"`
	ShopLocation  *string `json:"shop_location"`
	ShopContact   *string `json:"shop_contact"`
	SalesCategory *string `json:"sales_category"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName      string  `json:"full_name"`
	ShopName      *string `json:"shop_name"`
	ShopLocation  *string `json:"shop_location"`
	ShopContact   *string `json:"shop_contact"`
	SalesCategory *string `json:"sales_category"`
}

type AssignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Manager Sales Finance Admin"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type UserResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	ShopName      *string `json:"shop_name,omitempty"`
	ShopLocation  *string `json:"shop_location,omitempty"`
	ShopContact   *string `json:"shop_contact,omitempty"`
	SalesCategory *string `json:"sales_category,omitempty"`
	ShopLogoURL   *string `json:"shop_logo_url,omitempty"`
	Active        bool    `json:"active"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
