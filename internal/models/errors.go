package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrFetchFailed  = status.Errorf(codes.Unavailable, "failed to fetch products")
	ErrLookupFailed = status.Errorf(codes.Unavailable, "failed to fetch distinct values")
	ErrUnknownFacet = status.Errorf(codes.InvalidArgument, "unknown facet")
)
