package api_test

import (
	"strconv"
)

func jsonInt(n int) string { return strconv.Itoa(n) }
