package rename

import "strconv"

func copyCandidate(name string, n int) string {
	return name + ".copy_" + strconv.Itoa(n)
}
