package id

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Record id prefixes.
const (
	PrefixZone         = "ZONE"
	PrefixFineChecker  = "FC"
	PrefixMCOfficer    = "MCO"
	PrefixVehicleOwner = "VO"
	PrefixTransaction  = "TXN"
)

// New returns an id of the form PREFIX_<unix-millis>_<random>. The random part
// is nine lower-cased characters taken from the entropy section of a ULID.
func New(prefix string) string {
	now := time.Now()
	u := ulid.MustNew(ulid.Timestamp(now), rand.Reader)
	// chars 10..25 of the canonical form are entropy; the first nine carry 45 bits
	random := strings.ToLower(u.String()[10:19])
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), random)
}
