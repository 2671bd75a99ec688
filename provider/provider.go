// Package provider implements machine-translation backends.
package provider

import "github.com/Whomi996/zed-loc"

// MTProvider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type MTProvider = zedloc.MTProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = zedloc.TranslateRequest
