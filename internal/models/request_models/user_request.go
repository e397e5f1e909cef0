package request_models

import "io"

// Upload is a file received in a multipart request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ProfileInput holds the profile fields a user may change. Nil means unchanged.
type ProfileInput struct {
	Username    *string
	Avatar      *Upload
	Age         *int
	PhoneNumber *string
	Country     *string
	City        *string
	Address     *string
	ZipCode     *int
	Slogan      *string
	Bio         *string
}
