package util

import (
	"os"
	"strings"
)

// EnvironmentPrefix is the prefix of every environment variable onboard reads
const EnvironmentPrefix = "ONBOARD_"

// GetEnvironmentVariables returns the ONBOARD_ variables of the process keyed without their prefix,
// so ONBOARD_REDIS_ADDRESS is found under REDIS_ADDRESS. Empty values are left out.
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		name, value, found := strings.Cut(variable, "=")
		if !found || value == "" {
			continue
		}

		if key, ok := strings.CutPrefix(name, EnvironmentPrefix); ok && key != "" {
			environmentVariables[key] = value
		}
	}

	return environmentVariables
}
