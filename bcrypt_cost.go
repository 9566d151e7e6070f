//go:build !race

package todoapp

func passwordHashCost() int { return 14 }
