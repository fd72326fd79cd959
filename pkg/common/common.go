package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

func node() *snowflake.Node {
	snowflakeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode
}

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	return node().Generate().Int64()
}

// UUID returns the base36 string form of a snowflake ID.
func UUID() string {
	return node().Generate().Base36()
}

// Sha256HashWithSalt hashes src with the given salt appended.
func Sha256HashWithSalt(src string, salt string) string {
	h := sha256.New()
	h.Write([]byte(src + salt))
	return hex.EncodeToString(h.Sum(nil))
}

// GetSecretSalt reads the password salt from the environment,
// falling back to a fixed application salt.
func GetSecretSalt() string {
	if salt := os.Getenv("HOTELOPS_SECRET_SALT"); salt != "" {
		return salt
	}
	return "hotelops-0211"
}

// FmtDate renders a time in the admin UI date format.
func FmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FmtDatetime renders a time in the admin UI datetime format.
func FmtDatetime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// IfEmptyStr return defval if src is empty
func IfEmptyStr(src string, defval string) string {
	if src == "" {
		return defval
	}
	return src
}

// File2Str is a small helper used by config loaders in tests
func File2Str(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// MustStr panics with a formatted message when val is empty.
func MustStr(val string, format string, args ...interface{}) string {
	if val == "" {
		panic(fmt.Sprintf(format, args...))
	}
	return val
}
