package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotFound           = status.Errorf(codes.NotFound, "not found")
	ErrSuperseded         = status.Errorf(codes.Aborted, "superseded by a newer request")
	ErrInvalidCredentials = status.Errorf(codes.Unauthenticated, "invalid email or password")
	ErrNotAuthenticated   = status.Errorf(codes.Unauthenticated, "not authenticated")
)
