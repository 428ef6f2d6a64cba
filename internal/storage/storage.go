package storage

import "errors"

var ErrKeyNotFound = errors.New("key is not found")
