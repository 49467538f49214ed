package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StringToUUID5 derives a stable UUIDv5 from the given string. It is used to
// expose user identities on the read API without leaking platform ids.
func StringToUUID5(str string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(str)).String()
}

// HomeExpand replaces a leading '~' with the current user's home directory.
func HomeExpand(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// SliceIndex returns the position of s in slice, or -1.
func SliceIndex(slice []string, s string) int {
	for i, v := range slice {
		if v == s {
			return i
		}
	}
	return -1
}

// SliceRemove returns slice without the first occurrence of s, preserving order.
func SliceRemove(slice []string, s string) []string {
	i := SliceIndex(slice, s)
	if i < 0 {
		return slice
	}
	res := make([]string, 0, len(slice)-1)
	res = append(res, slice[:i]...)
	return append(res, slice[i+1:]...)
}
