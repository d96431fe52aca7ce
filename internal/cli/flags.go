package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const dayLayout = "2006-01-02"

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// dayValue is a pflag.Value holding a calendar day parsed from YYYY-MM-DD.
type dayValue time.Time

var _ pflag.Value = (*dayValue)(nil)

func (d *dayValue) String() string {
	t := time.Time(*d)
	if t.IsZero() {
		return ""
	}
	return t.Format(dayLayout)
}

func (d *dayValue) Set(s string) error {
	t, err := parseDay(s)
	if err != nil {
		return err
	}
	*d = dayValue(t)
	return nil
}

func (d *dayValue) Type() string { return "date" }

func (d *dayValue) Time() time.Time { return time.Time(*d) }
