package fileoutput

import "errors"

var (
	ErrInternal                = errors.New("fileoutput: internal storage error")
	ErrInvalidConfig           = errors.New("fileoutput: invalid configuration")
	ErrInvalidDefaultDisk      = errors.New("fileoutput: invalid default disk")
	ErrInvalidPath             = errors.New("fileoutput: invalid path")
	ErrNotFound                = errors.New("fileoutput: file not found")
	ErrUnknownDisk             = errors.New("fileoutput: unknown disk")
	ErrTemporaryURLUnsupported = errors.New("fileoutput: disk does not support temporary urls")
	ErrDeleteUnavailable       = errors.New("fileoutput: delete action is not available")
)
