package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvInt reads a positive or zero integer from the environment, falling
// back when the variable is unset or blank.
func EnvInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if IsBlank(raw) {
		return fallback, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s is not an integer: %q", name, raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must not be negative: %d", name, value)
	}
	return value, nil
}

func RequiredEnv(name string) string {
	value := os.Getenv(name)
	if IsBlank(value) {
		panic(name + " is empty")
	}
	return value
}
