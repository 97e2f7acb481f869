package logging_test

import "os"

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	return string(data), err
}
