package billing

import (
	"strings"

	"github.com/hotelworks/hotelops/pkg/common"
)

// NewReference issues a collision-safe receipt/transaction reference like
// "RCP-1J4C8JZ2K5". Snowflake IDs replace the old timestamp-plus-random
// scheme, which could collide under concurrent submissions.
func NewReference(prefix string) string {
	return prefix + "-" + strings.ToUpper(common.UUID())
}
