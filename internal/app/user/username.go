package user

import (
	"fmt"
	"math/rand"
)

var usernameAdjectives = []string{
	"Bayou", "Piney", "Winn", "Parish", "Creole", "Swamp", "Cypress", "Magnolia",
	"Pelican", "Cane", "Moss", "Pecan", "Longleaf", "Hwy84", "RedDirt", "Delta",
}

var usernameNouns = []string{
	"Ghost", "Watcher", "Whisperer", "Scout", "Lurker", "Voice", "Shadow",
	"Insider", "Caller", "Witness", "Source", "Neighbor", "Local", "Native",
}

// generateUsername returns a pseudonymous handle; callers must still
// check uniqueness against the store.
func generateUsername() string {
	adj := usernameAdjectives[rand.Intn(len(usernameAdjectives))]
	noun := usernameNouns[rand.Intn(len(usernameNouns))]
	num := rand.Intn(9000) + 1000
	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
