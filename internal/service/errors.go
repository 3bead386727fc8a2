package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNoSender              = errors.New("no companion sender configured")
	ErrNoStore               = errors.New("no persistent store configured")
)
