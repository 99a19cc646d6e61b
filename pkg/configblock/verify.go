package configblock

import (
	"errors"
	"fmt"
	"strings"
)

// Check is the outcome of one structural check on a raw record.
type Check struct {
	Name string
	Err  error
}

// OK reports whether the check passed
func (c Check) OK() bool {
	return c.Err == nil
}

var errNotChecked = errors.New("not checked")

// VerifyRecord runs every check Decode performs, plus the range report,
// without stopping at the first failure. Decode remains the authority on validity.
func VerifyRecord(raw []byte) []Check {
	checks := []Check{{Name: "size"}, {Name: "magic"}, {Name: "version"}, {Name: "checksum"}, {Name: "ranges"}}

	rec := &Record{}
	if err := rec.Unpack(raw); err != nil {
		checks[0].Err = err
		for i := 1; i < len(checks); i++ {
			checks[i].Err = fmt.Errorf("%w: record size is wrong", errNotChecked)
		}
		return checks
	}

	checks[1].Err = checkMagic(rec)
	checks[2].Err = checkVersion(rec)
	checks[3].Err = checkIntegrity(raw, rec)
	if issues := rec.Parameters().RangeIssues(); len(issues) > 0 {
		checks[4].Err = errors.New(strings.Join(issues, "; "))
	}

	return checks
}
