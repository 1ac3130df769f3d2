package user

import "context"

// Service định nghĩa business logic layer contract
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*PublicUser, error)
	Signin(ctx context.Context, req SigninRequest) (*SigninResponse, error)
	GetProfile(ctx context.Context, id string) (*PublicUser, error)
}
