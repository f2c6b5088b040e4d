package toastui

import "errors"

var (
	ErrNoProvider = errors.New("toastui.no_provider")
	ErrNotFound   = errors.New("toastui.not_found")
)
