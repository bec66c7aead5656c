//go:build tools
// +build tools

package main

// Pins the code generators and dev tools used by go:generate and the
// local development loop.
import (
	_ "github.com/cosmtrek/air"
	_ "github.com/google/wire/cmd/wire"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "go.uber.org/mock/mockgen"
)
