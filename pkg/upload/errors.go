package upload

import "errors"

var (
	// ErrBufferCreate indicates the staging buffer factory failed.
	ErrBufferCreate = errors.New("upload: staging buffer creation failed")
)
