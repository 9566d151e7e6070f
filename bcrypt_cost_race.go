//go:build race

package todoapp

import "golang.org/x/crypto/bcrypt"

// Race-enabled test runs are slow enough already.
func passwordHashCost() int { return bcrypt.DefaultCost }
