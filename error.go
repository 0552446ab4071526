package relay

import "errors"

var (
	ErrBadConfig = errors.New("bad config")
	ErrEncoding  = errors.New("encoding failed")
	ErrIO        = errors.New("io failure")
	ErrNotExist  = errors.New("not exist")
	ErrNotValid  = errors.New("invalid")
)
