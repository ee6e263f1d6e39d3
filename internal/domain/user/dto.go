package user

// UserResponse is the public view of a user returned at login
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProfileResponse is the full profile of a staff member
type ProfileResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Age           *int    `json:"age,omitempty"`
	Batch         *string `json:"batch,omitempty"`
	MonthlySalary string  `json:"monthly_salary"`
	Role          string  `json:"role"`
	CreatedAt     string  `json:"created_at"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func ToProfileResponse(u User) ProfileResponse {
	return ProfileResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Age:           u.Age,
		Batch:         u.Batch,
		MonthlySalary: u.MonthlySalary.StringFixed(2),
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
