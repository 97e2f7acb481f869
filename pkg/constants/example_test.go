package constants_test

import (
	"fmt"

	"github.com/agentstation/roster/pkg/constants"
)

// Example demonstrates deriving backup and lock paths for a registry
func Example() {
	registry := "agents.yaml"

	fmt.Println(registry + constants.BackupSuffix)
	fmt.Println(registry + constants.LockSuffix)
	fmt.Printf("dirs %o, files %o\n", constants.DirPermissions, constants.FilePermissions)
	// Output:
	// agents.yaml.bak
	// agents.yaml.lock
	// dirs 755, files 644
}
