package lcov

import (
	"crypto/md5"
	"encoding/base64"
	"strings"
)

// LineHash produces the checksum lcov attaches to DA records: the base64
// form of the line's MD5 digest with the trailing padding stripped.
func LineHash(line string) string {
	sum := md5.Sum([]byte(line))
	return strings.TrimRight(base64.StdEncoding.EncodeToString(sum[:]), "=")
}
